package telemetry

import (
	"context"
	"log/slog"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// LogExporter is a span exporter that writes finished spans to a logger.
// It is meant for command-line tools that have no collector to send to.
type LogExporter struct {
	logger *slog.Logger
	level  slog.Level
}

var _ sdktrace.SpanExporter = (*LogExporter)(nil)

// NewLogExporter creates an exporter that logs spans at level.
func NewLogExporter(logger *slog.Logger, level slog.Level) *LogExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogExporter{logger: logger, level: level}
}

// ExportSpans implements sdktrace.SpanExporter.
func (e *LogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		attrs := []slog.Attr{
			slog.String("trace_id", span.SpanContext().TraceID().String()),
			slog.String("span_id", span.SpanContext().SpanID().String()),
			slog.Duration("duration", span.EndTime().Sub(span.StartTime())),
			slog.String("status", span.Status().Code.String()),
		}
		if span.Parent().IsValid() {
			attrs = append(attrs, slog.String("parent_id", span.Parent().SpanID().String()))
		}
		for _, kv := range span.Attributes() {
			attrs = append(attrs, slog.Any(string(kv.Key), kv.Value.AsInterface()))
		}
		e.logger.LogAttrs(ctx, e.level, span.Name(), attrs...)
	}
	return nil
}

// Shutdown implements sdktrace.SpanExporter.
func (e *LogExporter) Shutdown(context.Context) error {
	return nil
}

// NewLogTracerProvider returns a tracer provider that logs every span as soon
// as it ends.
func NewLogTracerProvider(logger *slog.Logger, level slog.Level) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(NewLogExporter(logger, level)),
	)
}
