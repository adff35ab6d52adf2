// Package telemetrytest provides in-process OpenTelemetry providers whose
// output can be inspected by tests.
package telemetrytest

import (
	"context"
	"sync"
	"testing"

	"go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// LogExporter keeps exported log records in memory.
type LogExporter struct {
	mu      sync.Mutex
	records []sdklog.Record
}

var _ sdklog.Exporter = (*LogExporter)(nil)

// Export implements sdklog.Exporter.
func (e *LogExporter) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range records {
		e.records = append(e.records, r.Clone())
	}
	return nil
}

// Shutdown implements sdklog.Exporter.
func (e *LogExporter) Shutdown(context.Context) error { return nil }

// ForceFlush implements sdklog.Exporter.
func (e *LogExporter) ForceFlush(context.Context) error { return nil }

// Records returns a copy of everything exported so far.
func (e *LogExporter) Records() []sdklog.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]sdklog.Record, len(e.records))
	copy(out, e.records)
	return out
}

// Fixture bundles providers that export synchronously into memory.
type Fixture struct {
	Logs           *LogExporter
	Spans          *tracetest.SpanRecorder
	LoggerProvider *sdklog.LoggerProvider
	TracerProvider *sdktrace.TracerProvider
}

// New builds a Fixture and shuts it down when the test ends.
func New(t testing.TB) *Fixture {
	t.Helper()
	logs := &LogExporter{}
	spans := tracetest.NewSpanRecorder()
	f := &Fixture{
		Logs:           logs,
		Spans:          spans,
		LoggerProvider: sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(logs))),
		TracerProvider: sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans)),
	}
	t.Cleanup(func() {
		_ = f.LoggerProvider.Shutdown(context.Background())
		_ = f.TracerProvider.Shutdown(context.Background())
	})
	return f
}

// Attributes flattens a record's attributes into a map of Go values.
func Attributes(r sdklog.Record) map[string]any {
	out := make(map[string]any, r.AttributesLen())
	r.WalkAttributes(func(kv log.KeyValue) bool {
		switch kv.Value.Kind() {
		case log.KindString:
			out[kv.Key] = kv.Value.AsString()
		case log.KindInt64:
			out[kv.Key] = kv.Value.AsInt64()
		case log.KindFloat64:
			out[kv.Key] = kv.Value.AsFloat64()
		case log.KindBool:
			out[kv.Key] = kv.Value.AsBool()
		default:
			out[kv.Key] = kv.Value.String()
		}
		return true
	})
	return out
}

// FindSpan returns the first ended span with the given name.
func (f *Fixture) FindSpan(name string) (sdktrace.ReadOnlySpan, bool) {
	for _, s := range f.Spans.Ended() {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}
