package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/otel-greeter/internal/config"
)

func TestSetupLogger_DevAndProd(t *testing.T) {
	lg := SetupLogger(config.Config{AppEnv: "dev", OTELServiceName: "svc"})
	if lg == nil {
		t.Fatalf("nil logger")
	}
	lg2 := SetupLogger(config.Config{AppEnv: "prod", OTELServiceName: "svc"})
	if lg2 == nil {
		t.Fatalf("nil logger prod")
	}
}

func TestNewLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	lg := newLogger(&buf, config.Config{AppEnv: "prod", OTELServiceName: "svc"})
	require.False(t, lg.Enabled(context.Background(), slog.LevelDebug))

	lg.Info("hello", slog.Int("port", 3000))
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "svc", line["service"])
	require.Equal(t, "prod", line["env"])
	require.Equal(t, "hello", line["msg"])
	require.EqualValues(t, 3000, line["port"])
}

func TestNewLogger_DevDebug(t *testing.T) {
	var buf bytes.Buffer
	lg := newLogger(&buf, config.Config{AppEnv: "dev", OTELServiceName: "svc"})
	require.True(t, lg.Enabled(context.Background(), slog.LevelDebug))
}
