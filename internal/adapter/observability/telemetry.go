package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/fairyhunter13/otel-greeter/internal/config"
)

// Telemetry holds the process-wide providers. It is built once at startup and
// passed to the components that need it.
type Telemetry struct {
	Resource       *resource.Resource
	TracerProvider *sdktrace.TracerProvider
	LoggerProvider *sdklog.LoggerProvider
}

// NewResource describes this service instance. The same resource is attached
// to every exported span and log record.
func NewResource(ctx context.Context, cfg config.Config) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.OTELServiceName),
			semconv.ServiceInstanceIDKey.String(uuid.NewString()),
			semconv.DeploymentEnvironmentKey.String(cfg.AppEnv),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("op=observability.NewResource: %w", err)
	}
	return res, nil
}

// SetupTelemetry wires the resource, tracer provider and logger provider.
func SetupTelemetry(ctx context.Context, cfg config.Config) (*Telemetry, error) {
	res, err := NewResource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	tp, err := SetupTracing(ctx, cfg, res)
	if err != nil {
		return nil, err
	}
	lp, err := SetupLogs(ctx, cfg, res)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}
	return &Telemetry{Resource: res, TracerProvider: tp, LoggerProvider: lp}, nil
}

// Shutdown flushes queued log records and spans, then stops both pipelines.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	if t.LoggerProvider != nil {
		if err := t.LoggerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("logger provider: %w", err))
		}
	}
	if t.TracerProvider != nil {
		if err := t.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("op=observability.Telemetry.Shutdown: %w", err)
	}
	return nil
}
