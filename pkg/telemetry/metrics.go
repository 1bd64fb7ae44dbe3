package telemetry

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/linkstore/pkg/reactive"
	"github.com/vango-dev/linkstore/pkg/store"
)

// MetricsConfig configures the collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "linkstore").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for build duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the collectors.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "linkstore",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Build results used as label values.
const (
	ResultSuccess   = "success"
	ResultDuplicate = "duplicate_member"
	ResultShape     = "invalid_shape"
	ResultError     = "error"
)

// Metrics records reactive node events and store builds.
type Metrics struct {
	nodeEvents      *prometheus.CounterVec
	featuresApplied prometheus.Counter
	builds          *prometheus.CounterVec
	members         *prometheus.CounterVec
	buildDuration   *prometheus.HistogramVec
}

var (
	_ reactive.Observer   = (*Metrics)(nil)
	_ store.BuildObserver = (*Metrics)(nil)
)

// NewMetrics creates and registers the collectors. It panics if they are
// already registered with the chosen registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Buckets == nil {
		config.Buckets = prometheus.DefBuckets
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		nodeEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "node_events_total",
			Help:        "Reactive node events by event type and node kind",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "kind"}),

		featuresApplied: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "features_applied_total",
			Help:        "Total number of features merged into a store",
			ConstLabels: config.ConstLabels,
		}),

		builds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "builds_total",
			Help:        "Finished store builds by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		members: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "members_total",
			Help:        "Members registered by successful builds, by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		buildDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "build_duration_seconds",
			Help:        "Store build duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"result"}),
	}
}

// Observe implements reactive.Observer.
func (m *Metrics) Observe(e reactive.Event) {
	m.nodeEvents.WithLabelValues(string(e.Type), string(e.Kind)).Inc()
}

// FeatureApplied implements store.BuildObserver.
func (m *Metrics) FeatureApplied(store.FeatureStats) {
	m.featuresApplied.Inc()
}

// BuildFinished implements store.BuildObserver.
func (m *Metrics) BuildFinished(stats store.BuildStats, err error) {
	result := Result(err)
	m.builds.WithLabelValues(result).Inc()
	m.buildDuration.WithLabelValues(result).Observe(stats.Duration.Seconds())
	if err != nil {
		return
	}
	m.members.WithLabelValues(string(store.KindState)).Add(float64(stats.State))
	m.members.WithLabelValues(string(store.KindProperty)).Add(float64(stats.Properties))
	m.members.WithLabelValues(string(store.KindMethod)).Add(float64(stats.Methods))
}

// Result maps a build error to its result label.
func Result(err error) string {
	if err == nil {
		return ResultSuccess
	}
	var dup *store.DuplicateMemberError
	if errors.As(err, &dup) {
		return ResultDuplicate
	}
	var shape *store.InvalidLinkedStateShapeError
	if errors.As(err, &shape) {
		return ResultShape
	}
	return ResultError
}
