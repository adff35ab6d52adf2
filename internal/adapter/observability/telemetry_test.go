package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

func TestNewResource_ServiceAttributes(t *testing.T) {
	cfg := testConfig()
	res, err := NewResource(context.Background(), cfg)
	require.NoError(t, err)

	attrs := map[string]string{}
	for _, kv := range res.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	require.Equal(t, "test-service", attrs[string(semconv.ServiceNameKey)])
	require.Equal(t, "test", attrs[string(semconv.DeploymentEnvironmentKey)])
	require.NotEmpty(t, attrs[string(semconv.ServiceInstanceIDKey)])
}

func TestSetupTelemetry_ExportDisabled(t *testing.T) {
	ctx := context.Background()
	tel, err := SetupTelemetry(ctx, testConfig())
	require.NoError(t, err)
	require.NotNil(t, tel.Resource)
	require.NotNil(t, tel.TracerProvider)
	require.NotNil(t, tel.LoggerProvider)

	cl := NewCorrelationLogger(tel.LoggerProvider, tel.TracerProvider)
	require.Equal(t, CorrelationEphemeral, cl.emit(ctx, "forced", nil, WithForceSpan()))

	require.NoError(t, tel.Shutdown(ctx))
}

func TestSetupTelemetry_LogExportConfigured(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.OTLPLogsEndpoint = "http://localhost:4318/v1/logs"

	// The OTLP/HTTP exporter does not dial at construction time.
	tel, err := SetupTelemetry(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, tel.LoggerProvider)
}

func TestTelemetryShutdown_Nil(t *testing.T) {
	var tel *Telemetry
	require.NoError(t, tel.Shutdown(context.Background()))
	require.NoError(t, (&Telemetry{}).Shutdown(context.Background()))
}
