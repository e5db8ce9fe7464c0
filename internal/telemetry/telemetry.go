// Package telemetry wires the scheduler and executor lifecycle into
// OpenTelemetry: one span per stage execution, a histogram of stage
// durations, and counters of executors created and disposed. A nil or
// zero-value Telemetry records nothing, so callers that don't configure
// telemetry still get a working, inert implementation.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/flowstage/xplat-exec-core/internal/scheduler"

// Telemetry bundles the tracer and instruments the driver reports through.
// The zero value (and a nil *Telemetry) is ready to use: with no tracer or
// instruments set, every method returns without recording anything. Use
// New to bind to the installed global providers.
type Telemetry struct {
	tracer            trace.Tracer
	stageDuration     metric.Float64Histogram
	executorsCreated  metric.Int64Counter
	executorsDisposed metric.Int64Counter
}

// New builds a Telemetry bound to the currently-installed global
// TracerProvider and MeterProvider. Call it once and share the result;
// metric instrument creation is not free.
func New() (*Telemetry, error) {
	tracer := otel.Tracer(instrumentationName)
	meter := otel.Meter(instrumentationName)

	stageDuration, err := meter.Float64Histogram(
		"xplat_exec_core.stage.duration_ms",
		metric.WithDescription("Wall-clock duration of a single stage execution."),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}
	executorsCreated, err := meter.Int64Counter(
		"xplat_exec_core.executors.created",
		metric.WithDescription("Executors lazily constructed for a platform execution group."),
	)
	if err != nil {
		return nil, err
	}
	executorsDisposed, err := meter.Int64Counter(
		"xplat_exec_core.executors.disposed",
		metric.WithDescription("Executors disposed after their group finished executing."),
	)
	if err != nil {
		return nil, err
	}

	return &Telemetry{
		tracer:            tracer,
		stageDuration:     stageDuration,
		executorsCreated:  executorsCreated,
		executorsDisposed: executorsDisposed,
	}, nil
}

// StartStageSpan opens a span for a single stage execution. Callers must
// call End on the returned span.
func (t *Telemetry) StartStageSpan(ctx context.Context, stageDescription string, groupName string) (context.Context, trace.Span) {
	if t == nil || t.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return t.tracer.Start(ctx, "stage.execute",
		trace.WithAttributes(
			attribute.String("xplat_exec_core.stage", stageDescription),
			attribute.String("xplat_exec_core.group", groupName),
		),
	)
}

// RecordStageDuration records how long a single stage execution took.
func (t *Telemetry) RecordStageDuration(ctx context.Context, d time.Duration, stageDescription string) {
	if t == nil || t.stageDuration == nil {
		return
	}
	t.stageDuration.Record(ctx, float64(d.Milliseconds()),
		metric.WithAttributes(attribute.String("xplat_exec_core.stage", stageDescription)))
}

// RecordExecutorCreated increments the executors-created counter.
func (t *Telemetry) RecordExecutorCreated(ctx context.Context, platformName string) {
	if t == nil || t.executorsCreated == nil {
		return
	}
	t.executorsCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("xplat_exec_core.platform", platformName)))
}

// RecordExecutorDisposed increments the executors-disposed counter.
func (t *Telemetry) RecordExecutorDisposed(ctx context.Context, platformName string) {
	if t == nil || t.executorsDisposed == nil {
		return
	}
	t.executorsDisposed.Add(ctx, 1, metric.WithAttributes(attribute.String("xplat_exec_core.platform", platformName)))
}
