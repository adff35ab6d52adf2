package observability

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/trace"
)

const (
	// LoggerName is the instrumentation scope of emitted log records.
	LoggerName = "default-logger"
	// TracerName is the instrumentation scope of ephemeral spans.
	TracerName = "default-tracer"
)

// Correlation describes how an emitted record was tied to a trace.
type Correlation string

const (
	CorrelationAmbient   Correlation = "ambient"
	CorrelationEphemeral Correlation = "ephemeral"
	CorrelationNone      Correlation = "none"
)

// Attrs are the structured attributes of a log record. Values should be
// scalars; anything else is rendered with fmt.Sprint.
type Attrs map[string]any

type emitOptions struct {
	forceSpan bool
}

// EmitOption configures a single Emit call.
type EmitOption func(*emitOptions)

// WithForceSpan makes Emit open a short-lived span when the context carries
// no active span, so the record still gets trace/span IDs.
func WithForceSpan() EmitOption {
	return func(o *emitOptions) { o.forceSpan = true }
}

// CorrelationLogger emits INFO log records correlated with the active span.
type CorrelationLogger struct {
	logger log.Logger
	tracer trace.Tracer
}

// NewCorrelationLogger builds a logger on top of the given providers.
func NewCorrelationLogger(lp log.LoggerProvider, tp trace.TracerProvider) *CorrelationLogger {
	return &CorrelationLogger{
		logger: lp.Logger(LoggerName),
		tracer: tp.Tracer(TracerName),
	}
}

// Emit builds and emits one record. It never blocks on export and never
// fails; export errors are handled by the SDK processor.
//
// When ctx carries a valid span context the record gets that span's IDs. When
// it does not and WithForceSpan is given, a span named after the message is
// started, the record is emitted inside it, and the span is ended. Otherwise
// the record carries no trace IDs.
func (c *CorrelationLogger) Emit(ctx context.Context, message string, attrs Attrs, opts ...EmitOption) {
	c.emit(ctx, message, attrs, opts...)
}

func (c *CorrelationLogger) emit(ctx context.Context, message string, attrs Attrs, opts ...EmitOption) Correlation {
	var o emitOptions
	for _, opt := range opts {
		opt(&o)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	rec := newRecord(message, attrs)

	mode := CorrelationNone
	ambient := trace.SpanContextFromContext(ctx)
	switch {
	case ambient.IsValid():
		mode = CorrelationAmbient
		c.logger.Emit(trace.ContextWithSpanContext(ctx, ambient), rec)
	case o.forceSpan:
		mode = CorrelationEphemeral
		spanCtx, span := c.tracer.Start(ctx, message)
		c.logger.Emit(spanCtx, rec)
		span.End()
	default:
		// ctx may still hold an invalid (zero) span context; drop it so the
		// record is uniformly uncorrelated.
		c.logger.Emit(trace.ContextWithSpanContext(ctx, trace.SpanContext{}), rec)
	}

	LogRecordsEmittedTotal.WithLabelValues(string(mode)).Inc()
	return mode
}

func newRecord(message string, attrs Attrs) log.Record {
	now := time.Now()
	var rec log.Record
	rec.SetTimestamp(now)
	rec.SetObservedTimestamp(now)
	rec.SetSeverity(log.SeverityInfo)
	rec.SetSeverityText("INFO")
	rec.SetBody(log.StringValue(message))
	if len(attrs) > 0 {
		kvs := make([]log.KeyValue, 0, len(attrs))
		for k, v := range attrs {
			kvs = append(kvs, log.KeyValue{Key: k, Value: toLogValue(v)})
		}
		rec.AddAttributes(kvs...)
	}
	return rec
}

func toLogValue(v any) log.Value {
	switch x := v.(type) {
	case nil:
		return log.Value{}
	case string:
		return log.StringValue(x)
	case bool:
		return log.BoolValue(x)
	case int:
		return log.IntValue(x)
	case int8:
		return log.Int64Value(int64(x))
	case int16:
		return log.Int64Value(int64(x))
	case int32:
		return log.Int64Value(int64(x))
	case int64:
		return log.Int64Value(x)
	case uint8:
		return log.Int64Value(int64(x))
	case uint16:
		return log.Int64Value(int64(x))
	case uint32:
		return log.Int64Value(int64(x))
	case uint:
		return uintValue(uint64(x))
	case uint64:
		return uintValue(x)
	case float32:
		return log.Float64Value(float64(x))
	case float64:
		return log.Float64Value(x)
	case error:
		return log.StringValue(x.Error())
	case fmt.Stringer:
		return log.StringValue(x.String())
	default:
		return log.StringValue(fmt.Sprint(x))
	}
}

func uintValue(x uint64) log.Value {
	if x > math.MaxInt64 {
		return log.StringValue(strconv.FormatUint(x, 10))
	}
	return log.Int64Value(int64(x))
}
