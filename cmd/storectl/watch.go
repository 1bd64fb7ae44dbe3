package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/linkstore/internal/errors"
	"github.com/vango-dev/linkstore/internal/watch"
	"github.com/vango-dev/linkstore/pkg/record"
	"github.com/vango-dev/linkstore/pkg/store"
)

func watchCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Keep a store in sync with a state file",
		Long: `Load a state file into a store, then re-read it whenever it changes.

Changed keys are patched into the existing state members and reported.
Keys added to the file after start are ignored, since a store's members
are fixed once it is built.

Examples:
  storectl watch state.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runWatch(ctx, args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatAuto, "State file format: auto, json or toml")

	return cmd
}

func (a *app) runWatch(ctx context.Context, path, format string) error {
	initial, err := loadState(path, format)
	if err != nil {
		return err
	}
	s, err := a.buildFromRecord(ctx, initial, false)
	if err != nil {
		return errors.Classify(err)
	}

	w, err := watch.NewWatcher(watch.Config{
		Files:    []string{path},
		Debounce: a.cfg.WatchDebounce,
		Logger:   a.logger,
	})
	if err != nil {
		return errors.New("L013").Wrap(err)
	}

	w.OnChange(func(changes []watch.Change) {
		for _, c := range changes {
			if c.Op == watch.OpRemove || c.Op == watch.OpRename {
				a.warn("%s was removed; keeping the last loaded state", path)
				continue
			}
			next, err := loadState(path, format)
			if err != nil {
				errors.PrintError(a.errOut, err)
				continue
			}
			a.report(s, next)
		}
	})

	a.success("Watching %s (%d members)", path, len(s.Names()))
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		return errors.New("L013").Wrap(err)
	}
	return nil
}

// report applies next to s and prints what changed.
func (a *app) report(s *store.Store, next record.Record) {
	result, err := applyUpdate(s, next)
	if err != nil {
		errors.PrintError(a.errOut, err)
		return
	}
	for _, name := range result.ignored {
		a.warn("ignoring new key %q", name)
	}
	if len(result.changed) == 0 {
		a.info("no changes")
		return
	}
	for _, name := range result.changed {
		a.success("%s = %s", name, formatValue(s.Get(name)))
	}
	a.logger.Debug("state file applied", "store_id", s.ID().String(), "changed", len(result.changed))
}

type updateResult struct {
	changed []string
	ignored []string
}

// applyUpdate patches the keys of next that name state members of s. Keys s
// does not have are reported as ignored.
func applyUpdate(s *store.Store, next record.Record) (updateResult, error) {
	var result updateResult

	before := make(map[string]uint64, next.Len())
	patch := record.Record{}
	for _, f := range next.Fields() {
		cell, ok := s.State(f.Key)
		if !ok {
			result.ignored = append(result.ignored, f.Key)
			continue
		}
		before[f.Key] = cell.Version()
		patch = patch.With(f.Key, f.Value)
	}

	if err := errors.Recover(func() error { return s.Patch(patch) }); err != nil {
		return updateResult{}, err
	}

	for _, key := range patch.Keys() {
		cell, _ := s.State(key)
		if cell.Version() != before[key] {
			result.changed = append(result.changed, key)
		}
	}
	return result, nil
}
