package observability

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"

	"github.com/fairyhunter13/otel-greeter/internal/config"
)

// SetupLogs builds the logger provider. Records are handed to a bounded batch
// processor that exports them over OTLP/HTTP in the background; emitting
// never waits on the collector. With OTEL_LOGS_EXPORTER=none the provider has
// no processor and records are dropped.
func SetupLogs(ctx context.Context, cfg config.Config, res *resource.Resource) (*sdklog.LoggerProvider, error) {
	opts := []sdklog.LoggerProviderOption{sdklog.WithResource(res)}

	if !cfg.LogExportEnabled() {
		slog.Info("log export disabled", slog.String("exporter", cfg.LogsExporter))
		return sdklog.NewLoggerProvider(opts...), nil
	}

	exporter, err := otlploghttp.New(ctx, otlploghttp.WithEndpointURL(cfg.OTLPLogsEndpoint))
	if err != nil {
		return nil, fmt.Errorf("op=observability.SetupLogs: %w", err)
	}
	processor := sdklog.NewBatchProcessor(exporter,
		sdklog.WithMaxQueueSize(cfg.LogMaxQueueSize),
		sdklog.WithExportInterval(cfg.LogScheduleDelay),
		sdklog.WithExportMaxBatchSize(cfg.LogMaxExportBatch),
	)
	slog.Info("log export configured",
		slog.String("endpoint", cfg.OTLPLogsEndpoint),
		slog.Int("max_queue_size", cfg.LogMaxQueueSize),
		slog.Duration("schedule_delay", cfg.LogScheduleDelay))

	opts = append(opts, sdklog.WithProcessor(processor))
	return sdklog.NewLoggerProvider(opts...), nil
}
