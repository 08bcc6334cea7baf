package opentelemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/get-eventually/go-command/client"
)

var _ client.Repository = new(InstrumentedRepository)

// InstrumentedRepository is a wrapper type over a client.Repository
// instance to provide instrumentation, in the form of metrics and traces
// using OpenTelemetry.
//
// Use NewInstrumentedRepository for constructing a new instance of this type.
type InstrumentedRepository struct {
	repository client.Repository

	tracer   trace.Tracer
	duration metric.Int64Histogram
}

// NewInstrumentedRepository returns a wrapper type to provide OpenTelemetry
// instrumentation (metrics and traces) around a client.Repository.
//
// An error is returned if metrics could not be registered.
func NewInstrumentedRepository(repository client.Repository, options ...Option) (*InstrumentedRepository, error) {
	cfg := newConfig(options...)

	duration, err := cfg.meter().Int64Histogram(
		"client.repository.duration.milliseconds",
		metric.WithUnit("ms"),
		metric.WithDescription("Duration in milliseconds of client.Repository operations performed."),
	)
	if err != nil {
		return nil, fmt.Errorf("opentelemetry.InstrumentedRepository: failed to register metric, %w", err)
	}

	return &InstrumentedRepository{
		repository: repository,
		tracer:     cfg.tracer(),
		duration:   duration,
	}, nil
}

func (ir *InstrumentedRepository) start(
	ctx context.Context,
	operation string,
	id client.ID,
) (context.Context, trace.Span, []attribute.KeyValue) {
	attributes := []attribute.KeyValue{OperationAttribute.String(operation)}

	ctx, span := ir.tracer.Start(ctx, "client.Repository."+operation, trace.WithAttributes(
		OperationAttribute.String(operation),
		ClientIDAttribute.String(id.String()),
	))

	return ctx, span, attributes
}

// Get calls the wrapped client.Repository.Get method and records metrics
// and traces around it.
//
// client.ErrNotFound is a regular outcome, and it's not reported as an error.
func (ir *InstrumentedRepository) Get(ctx context.Context, id client.ID) (result *client.Client, err error) {
	ctx, span, attributes := ir.start(ctx, "Get", id)
	start := time.Now()

	defer func() {
		observed := err
		if errors.Is(err, client.ErrNotFound) {
			observed = nil
		}

		observe(ctx, span, ir.duration, start, observed, attributes...)
	}()

	return ir.repository.Get(ctx, id)
}

// Add calls the wrapped client.Repository.Add method and records metrics
// and traces around it.
func (ir *InstrumentedRepository) Add(ctx context.Context, c *client.Client) (err error) {
	ctx, span, attributes := ir.start(ctx, "Add", c.ID)
	start := time.Now()

	defer func() { observe(ctx, span, ir.duration, start, err, attributes...) }()

	return ir.repository.Add(ctx, c)
}

// Remove calls the wrapped client.Repository.Remove method and records metrics
// and traces around it.
func (ir *InstrumentedRepository) Remove(ctx context.Context, id client.ID) (err error) {
	ctx, span, attributes := ir.start(ctx, "Remove", id)
	start := time.Now()

	defer func() { observe(ctx, span, ir.duration, start, err, attributes...) }()

	return ir.repository.Remove(ctx, id)
}
