// Package telemetry exports Prometheus metrics for the reactive runtime and
// the store builder.
//
// A Metrics value implements both reactive.Observer and store.BuildObserver:
//
//	m := telemetry.NewMetrics(telemetry.WithRegistry(reg))
//	prev := reactive.SetObserver(m)
//	defer reactive.SetObserver(prev)
//
//	s, err := store.NewBuilder(store.WithObserver(m)).Build(ctx, features...)
//
// Metrics collected (namespace "linkstore" by default):
//   - node_events_total: reactive node events by event type and node kind
//   - features_applied_total: features merged into a store
//   - builds_total: finished builds by result
//   - members_total: members registered by successful builds, by kind
//   - build_duration_seconds: build duration by result
package telemetry
