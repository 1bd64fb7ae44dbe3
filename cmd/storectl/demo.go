package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/vango-dev/linkstore/internal/errors"
	"github.com/vango-dev/linkstore/pkg/reactive"
	"github.com/vango-dev/linkstore/pkg/record"
	"github.com/vango-dev/linkstore/pkg/store"
	"github.com/vango-dev/linkstore/pkg/telemetry"
)

func demoCmd(a *app) *cobra.Command {
	var (
		showMetrics bool
		trace       bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk through a linked state scenario",
		Long: `Build a small store with a linked member and show how overrides behave.

The store holds a count and a linked "doubled" member computed from it.
Writing doubled overrides it until count changes again.

Examples:
  storectl demo
  storectl demo --metrics
  storectl demo --trace --log-level debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.Recover(func() error {
				return a.runDemo(cmd.Context(), showMetrics, trace)
			})
		},
	}

	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print the collected metrics in Prometheus text format")
	cmd.Flags().BoolVar(&trace, "trace", false, "Log build spans")

	return cmd
}

func (a *app) runDemo(ctx context.Context, showMetrics, trace bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	reg := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(
		telemetry.WithRegistry(reg),
		telemetry.WithNamespace(a.cfg.MetricsNamespace),
	)
	prev := reactive.SetObserver(metrics)
	defer reactive.SetObserver(prev)

	opts := []store.Option{
		store.WithLogger(a.logger),
		store.WithObserver(metrics),
	}
	if trace {
		tp := telemetry.NewLogTracerProvider(a.logger, slog.LevelInfo)
		defer tp.Shutdown(ctx)
		opts = append(opts, store.WithTracer(tp.Tracer("storectl")))
	}

	s, err := store.NewBuilder(opts...).Build(ctx,
		store.WithState(record.Of("count", 0)),
		store.WithLinkedState(func(v store.View) store.Source {
			return store.Value(record.Of("doubled", store.Read[int](v, "count")*2))
		}),
		store.WithMethods(func(scope *store.MethodScope) store.Methods {
			return store.Methods{
				"increment": func(...any) (any, error) {
					return nil, scope.Set("count", store.Read[int](scope, "count")+1)
				},
			}
		}),
	)
	if err != nil {
		return errors.Classify(err)
	}

	doubled, _ := s.State("doubled")
	show := func(step string) {
		fmt.Fprintf(a.out, "%-22s count=%v doubled=%v\n", step, s.Get("count"), doubled.Get())
	}

	show("initial")
	if err := s.Set("count", 5); err != nil {
		return err
	}
	show("set count=5")
	doubled.Set(100)
	show("set doubled=100")
	show("read again")
	if err := s.Set("count", 6); err != nil {
		return err
	}
	show("set count=6")
	if _, err := s.Call("increment"); err != nil {
		return err
	}
	show("call increment")

	if showMetrics {
		families, err := reg.Gather()
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out)
		for _, mf := range families {
			if _, err := expfmt.MetricFamilyToText(a.out, mf); err != nil {
				return err
			}
		}
	}
	return nil
}
