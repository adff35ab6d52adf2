// Package observability provides logging, metrics, and tracing.
//
// It integrates with OpenTelemetry for system monitoring. Log records are
// exported over OTLP and correlated with spans by CorrelationLogger, while
// operator diagnostics go to a separate slog JSON stream.
package observability

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"

	"github.com/fairyhunter13/otel-greeter/internal/config"
)

// SetupTracing builds the tracer provider. Spans are always created so that
// log records can carry trace/span IDs; they are exported only when a traces
// endpoint is configured.
func SetupTracing(ctx context.Context, cfg config.Config, res *resource.Resource) (*trace.TracerProvider, error) {
	sampler := trace.ParentBased(trace.TraceIDRatioBased(cfg.TraceSampleRatio))
	opts := []trace.TracerProviderOption{
		trace.WithResource(res),
		trace.WithSampler(sampler),
	}

	if !cfg.TraceExportEnabled() {
		slog.Info("OTLP traces endpoint not set; span export disabled")
		return trace.NewTracerProvider(opts...), nil
	}

	exporter, err := newSpanExporter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("op=observability.SetupTracing: %w", err)
	}
	slog.Info("tracing configured",
		slog.String("endpoint", cfg.OTLPTracesEndpoint),
		slog.String("protocol", cfg.OTLPTracesProtocol),
		slog.Float64("sampling_ratio", cfg.TraceSampleRatio))

	opts = append(opts, trace.WithBatcher(exporter))
	return trace.NewTracerProvider(opts...), nil
}

func newSpanExporter(ctx context.Context, cfg config.Config) (trace.SpanExporter, error) {
	switch cfg.OTLPTracesProtocol {
	case config.ProtocolGRPC:
		return otlptracegrpc.New(ctx, otlptracegrpc.WithEndpointURL(cfg.OTLPTracesEndpoint))
	case config.ProtocolHTTP, "":
		return otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.OTLPTracesEndpoint))
	default:
		return nil, fmt.Errorf("unsupported traces protocol %q", cfg.OTLPTracesProtocol)
	}
}
