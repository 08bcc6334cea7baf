package opentelemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys used by the instrumentation.
const (
	ErrorAttribute       attribute.Key = "error"
	ClientIDAttribute    attribute.Key = "client.id"
	CommandNameAttribute attribute.Key = "command.name"
	OperationAttribute   attribute.Key = "operation"
)

// observe records the duration of an operation started at start, and closes
// its span, reporting err if any.
func observe(
	ctx context.Context,
	span trace.Span,
	histogram metric.Int64Histogram,
	start time.Time,
	err error,
	attributes ...attribute.KeyValue,
) {
	attributes = append(attributes, ErrorAttribute.Bool(err != nil))
	histogram.Record(ctx, time.Since(start).Milliseconds(), metric.WithAttributes(attributes...))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}
