package opentelemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/get-eventually/go-command/command"
)

var _ command.Invoker = new(InstrumentedInvoker)

// InstrumentedInvoker is a wrapper type over a command.Invoker
// (e.g. a command.Manager) to provide instrumentation, in the form
// of metrics and traces using OpenTelemetry.
//
// Use NewInstrumentedInvoker for constructing a new instance of this type.
type InstrumentedInvoker struct {
	invoker command.Invoker

	tracer   trace.Tracer
	duration metric.Int64Histogram
	rejected metric.Int64Counter
}

// NewInstrumentedInvoker returns a wrapper type to provide OpenTelemetry
// instrumentation (metrics and traces) around a command.Invoker.
//
// An error is returned if metrics could not be registered.
func NewInstrumentedInvoker(invoker command.Invoker, options ...Option) (*InstrumentedInvoker, error) {
	cfg := newConfig(options...)
	meter := cfg.meter()

	wrapErr := func(err error) error {
		return fmt.Errorf("opentelemetry.InstrumentedInvoker: failed to register metric, %w", err)
	}

	duration, err := meter.Int64Histogram(
		"command.invoker.duration.milliseconds",
		metric.WithUnit("ms"),
		metric.WithDescription("Duration in milliseconds of command.Invoker operations performed."),
	)
	if err != nil {
		return nil, wrapErr(err)
	}

	rejected, err := meter.Int64Counter(
		"command.invoker.rejected",
		metric.WithDescription("Number of commands rejected because their preconditions did not hold."),
	)
	if err != nil {
		return nil, wrapErr(err)
	}

	return &InstrumentedInvoker{
		invoker:  invoker,
		tracer:   cfg.tracer(),
		duration: duration,
		rejected: rejected,
	}, nil
}

// Invoke calls the wrapped command.Invoker.Invoke method and records metrics
// and traces around it.
func (ii *InstrumentedInvoker) Invoke(ctx context.Context, cmd command.Command) (err error) {
	var name string
	if cmd != nil {
		name = cmd.Name()
	}

	attributes := []attribute.KeyValue{
		OperationAttribute.String("Invoke"),
		CommandNameAttribute.String(name),
	}

	ctx, span := ii.tracer.Start(ctx, "command.Invoker.Invoke", trace.WithAttributes(attributes...))
	start := time.Now()

	defer func() {
		if errors.Is(err, command.ErrCannotExecute) {
			ii.rejected.Add(ctx, 1, metric.WithAttributes(CommandNameAttribute.String(name)))
		}

		observe(ctx, span, ii.duration, start, err, attributes...)
	}()

	return ii.invoker.Invoke(ctx, cmd)
}

// Undo calls the wrapped command.Invoker.Undo method and records metrics
// and traces around it.
func (ii *InstrumentedInvoker) Undo(ctx context.Context) (err error) {
	attributes := []attribute.KeyValue{OperationAttribute.String("Undo")}

	ctx, span := ii.tracer.Start(ctx, "command.Invoker.Undo", trace.WithAttributes(attributes...))
	start := time.Now()

	defer func() { observe(ctx, span, ii.duration, start, err, attributes...) }()

	return ii.invoker.Undo(ctx)
}
