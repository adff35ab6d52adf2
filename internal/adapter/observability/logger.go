package observability

import (
	"io"
	"log/slog"
	"os"

	"github.com/fairyhunter13/otel-greeter/internal/config"
)

// SetupLogger configures the JSON slog logger used for operator diagnostics.
// It is separate from the OTLP log records produced by CorrelationLogger.
func SetupLogger(cfg config.Config) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{}
	// In dev, show debug level; elsewhere default to info
	if cfg.IsDev() {
		opts.Level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(w, opts)
	return slog.New(h).With(
		slog.String("service", cfg.OTELServiceName),
		slog.String("env", cfg.AppEnv),
	)
}
