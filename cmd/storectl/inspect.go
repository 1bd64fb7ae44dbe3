package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/linkstore/internal/errors"
	"github.com/vango-dev/linkstore/pkg/deep"
	"github.com/vango-dev/linkstore/pkg/record"
	"github.com/vango-dev/linkstore/pkg/store"
)

func inspectCmd(a *app) *cobra.Command {
	var (
		format string
		asJSON bool
		linked bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Load a state file and print its members",
		Long: `Load a JSON or TOML state file into a store and print every member.

Nested tables are printed through their deep views, one line per leaf.
With --linked the file seeds linked state instead of plain state.

Examples:
  storectl inspect state.toml
  storectl inspect state.json --json
  storectl inspect settings.conf --format toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.Recover(func() error {
				return a.runInspect(cmd.Context(), args[0], format, asJSON, linked)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatAuto, "State file format: auto, json or toml")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print a JSON snapshot instead of the member tree")
	cmd.Flags().BoolVar(&linked, "linked", false, "Load the file as linked state")

	return cmd
}

func (a *app) runInspect(ctx context.Context, path, format string, asJSON, linked bool) error {
	initial, err := loadState(path, format)
	if err != nil {
		return err
	}

	s, err := a.buildFromRecord(ctx, initial, linked)
	if err != nil {
		return errors.Classify(err)
	}

	if asJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(s.Snapshot())
	}

	fmt.Fprintf(a.out, "store %s (%d members)\n", s.ID(), len(s.Names()))
	for _, name := range s.Names() {
		printMember(a.out, s, name)
	}
	return nil
}

// buildFromRecord builds a store with one state member per key of initial.
func (a *app) buildFromRecord(ctx context.Context, initial record.Record, linked bool) (*store.Store, error) {
	feature := store.WithState(initial)
	if linked {
		feature = store.WithLinkedState(func(store.View) store.Source {
			return store.Value(initial)
		})
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return store.NewBuilder(store.WithLogger(a.logger)).Build(ctx, feature)
}

// printMember writes one member, expanding record values leaf by leaf.
func printMember(w io.Writer, s *store.Store, name string) {
	kind, _ := s.Kind(name)
	if kind != store.KindState {
		fmt.Fprintf(w, "  %-8s %s\n", kind, name)
		return
	}

	view, _ := s.Deep(name)
	if _, isRecord := view.Record(); !isRecord {
		fmt.Fprintf(w, "  %-8s %s = %s\n", kind, name, formatValue(view.Peek()))
		return
	}

	fmt.Fprintf(w, "  %-8s %s\n", kind, name)
	view.Walk(func(n deep.Node) {
		depth := strings.Count(n.Path(), ".")
		indent := strings.Repeat("  ", depth+1)
		path := name + "." + n.Path()
		if _, isView := n.(*deep.View); isView {
			fmt.Fprintf(w, "  %s%s\n", indent, path)
			return
		}
		fmt.Fprintf(w, "  %s%s = %s\n", indent, path, formatValue(n.Peek()))
	})
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case nil:
		return "null"
	case record.Record:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
