// Command server starts the trace-correlated greeting HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	httpserver "github.com/fairyhunter13/otel-greeter/internal/adapter/httpserver"
	"github.com/fairyhunter13/otel-greeter/internal/adapter/observability"
	"github.com/fairyhunter13/otel-greeter/internal/app"
	"github.com/fairyhunter13/otel-greeter/internal/config"
	"github.com/fairyhunter13/otel-greeter/internal/service/ratelimiter"
	"github.com/fairyhunter13/otel-greeter/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		slog.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	observability.InitMetrics()

	ctx := context.Background()
	tel, err := observability.SetupTelemetry(ctx, cfg)
	if err != nil {
		return err
	}
	// Queued log records and spans are flushed after the HTTP server stops.
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			slog.Error("telemetry shutdown failed", slog.Any("error", err))
		}
	}()
	otel.SetTracerProvider(tel.TracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	emitter := observability.NewCorrelationLogger(tel.LoggerProvider, tel.TracerProvider)
	srv := httpserver.NewServer(cfg, usecase.NewGreetingService(cfg.DemoUsername), emitter)
	if cfg.SharedRateLimit() {
		opts, err := redis.ParseURL(cfg.RateLimitRedisURL)
		if err != nil {
			return fmt.Errorf("op=main.run: redis url: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer func() { _ = rdb.Close() }()
		srv.Limiter = ratelimiter.NewRedisLuaLimiter(rdb, ratelimiter.NewBucketConfigFromPerMinute(cfg.RateLimitPerMin))
		slog.Info("shared rate limiter enabled", slog.String("redis", opts.Addr))
	}
	handler := app.BuildRouter(cfg, srv, tel.TracerProvider)

	srvHTTP := &http.Server{
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return fmt.Errorf("op=main.run: listen: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srvHTTP.Serve(ln)
	}()

	// Startup has no request context, so this record is uncorrelated.
	emitter.Emit(ctx, "Server started", observability.Attrs{"port": cfg.Port})
	slog.Info("server running", slog.String("url", fmt.Sprintf("http://localhost:%d", cfg.Port)))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("op=main.run: serve: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	if err := srvHTTP.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown failed", slog.Any("error", err))
	}
	return serveErr
}
