package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for store builds.
const defaultTracerName = "linkstore"

// FeatureStats describes one applied feature.
type FeatureStats struct {
	Index      int
	State      int
	Properties int
	Methods    int
	Duration   time.Duration
}

// BuildStats describes a finished build.
type BuildStats struct {
	StoreID    string
	Features   int
	State      int
	Properties int
	Methods    int
	Duration   time.Duration
}

// BuildObserver is notified as a build progresses.
type BuildObserver interface {
	FeatureApplied(FeatureStats)
	// BuildFinished is called once per build; err is nil on success.
	BuildFinished(stats BuildStats, err error)
}

type noopBuildObserver struct{}

func (noopBuildObserver) FeatureApplied(FeatureStats) {}
func (noopBuildObserver) BuildFinished(BuildStats, error) {}

// Builder applies features to produce stores.
type Builder struct {
	logger   *slog.Logger
	tracer   trace.Tracer
	observer BuildObserver
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for build diagnostics.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithTracer sets the tracer used to trace builds.
// Default: the global provider's "linkstore" tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(b *Builder) {
		if tracer != nil {
			b.tracer = tracer
		}
	}
}

// WithTracerName resolves the tracer from the global provider by name.
func WithTracerName(name string) Option {
	return func(b *Builder) {
		b.tracer = otel.Tracer(name)
	}
}

// WithObserver sets the build observer.
func WithObserver(o BuildObserver) Option {
	return func(b *Builder) {
		if o == nil {
			b.observer = noopBuildObserver{}
			return
		}
		b.observer = o
	}
}

// NewBuilder creates a builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		logger:   slog.Default(),
		tracer:   otel.Tracer(defaultTracerName),
		observer: noopBuildObserver{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build applies features with a default builder.
func Build(features ...Feature) (*Store, error) {
	return NewBuilder().Build(context.Background(), features...)
}

// Build applies features in order and returns the assembled store.
//
// Each feature's extension is checked against every name registered so far
// before anything is merged. On the first failure Build returns a nil store
// and the error; panics raised by feature factories propagate unchanged.
func (b *Builder) Build(ctx context.Context, features ...Feature) (*Store, error) {
	id := uuid.New()
	start := time.Now()

	ctx, span := b.tracer.Start(ctx, "linkstore.Build",
		trace.WithAttributes(
			attribute.String("store.id", id.String()),
			attribute.Int("store.features", len(features)),
		),
	)
	defer span.End()

	log := b.logger.With("store_id", id.String())
	acc := newAccumulator()

	for i, f := range features {
		stats, err := b.applyFeature(ctx, acc, i, f)
		if err != nil {
			setFeatureIndex(err, i)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.Warn("store build failed", "feature", i, "error", err)
			b.observer.BuildFinished(BuildStats{
				StoreID:  id.String(),
				Features: i,
				Duration: time.Since(start),
			}, err)
			return nil, err
		}
		b.observer.FeatureApplied(stats)
		log.Debug("feature applied",
			"feature", i,
			"state", stats.State,
			"properties", stats.Properties,
			"methods", stats.Methods,
			"duration", stats.Duration,
		)
	}

	s := newStore(id, acc)
	stats := BuildStats{
		StoreID:    id.String(),
		Features:   len(features),
		State:      len(acc.state),
		Properties: len(acc.props),
		Methods:    len(acc.methods),
		Duration:   time.Since(start),
	}
	span.SetAttributes(attribute.Int("store.members", len(acc.reg.order)))
	span.SetStatus(codes.Ok, "")
	b.observer.BuildFinished(stats, nil)
	log.Debug("store built", "members", len(acc.reg.order), "duration", stats.Duration)
	return s, nil
}

func (b *Builder) applyFeature(ctx context.Context, acc *accumulator, index int, f Feature) (FeatureStats, error) {
	_, span := b.tracer.Start(ctx, "linkstore.Feature",
		trace.WithAttributes(attribute.Int("feature.index", index)),
	)
	defer span.End()

	start := time.Now()
	ext, err := f.apply(acc)
	if err == nil {
		err = acc.reg.check(ext)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return FeatureStats{}, err
	}
	acc.merge(ext)

	state, props, methods := ext.Counts()
	span.SetAttributes(
		attribute.Int("feature.state", state),
		attribute.Int("feature.properties", props),
		attribute.Int("feature.methods", methods),
	)
	return FeatureStats{
		Index:      index,
		State:      state,
		Properties: props,
		Methods:    methods,
		Duration:   time.Since(start),
	}, nil
}
