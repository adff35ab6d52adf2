// Package config defines configuration parsing and helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// Supported OTLP trace protocols.
const (
	ProtocolHTTP = "http/protobuf"
	ProtocolGRPC = "grpc"
)

// Supported log exporters.
const (
	LogsExporterOTLP = "otlp"
	LogsExporterNone = "none"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"dev"`
	Port   int    `env:"PORT" envDefault:"3000" validate:"min=1,max=65535"`

	OTELServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"svelte-demo-service" validate:"required"`
	// LogsExporter selects the log exporter: "otlp" or "none".
	LogsExporter string `env:"OTEL_LOGS_EXPORTER" envDefault:"otlp" validate:"oneof=otlp none"`
	// OTLPLogsEndpoint is the full OTLP/HTTP logs URL.
	OTLPLogsEndpoint string `env:"OTEL_EXPORTER_OTLP_LOGS_ENDPOINT" envDefault:"http://localhost:4318/v1/logs" validate:"omitempty,url"`
	// OTLPTracesEndpoint is the OTLP traces URL. Empty disables span export,
	// spans are still created so that log records get trace/span IDs.
	OTLPTracesEndpoint string  `env:"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT" envDefault:"" validate:"omitempty,url"`
	OTLPTracesProtocol string  `env:"OTEL_EXPORTER_OTLP_TRACES_PROTOCOL" envDefault:"http/protobuf" validate:"oneof=http/protobuf grpc"`
	TraceSampleRatio   float64 `env:"OTEL_TRACES_SAMPLER_RATIO" envDefault:"1.0" validate:"gte=0,lte=1"`

	// Batch log record processor tuning.
	LogMaxQueueSize   int           `env:"OTEL_BLRP_MAX_QUEUE_SIZE" envDefault:"2048" validate:"gt=0"`
	LogScheduleDelay  time.Duration `env:"OTEL_BLRP_SCHEDULE_DELAY" envDefault:"1s" validate:"gt=0"`
	LogMaxExportBatch int           `env:"OTEL_BLRP_MAX_EXPORT_BATCH_SIZE" envDefault:"512" validate:"gt=0,ltefield=LogMaxQueueSize"`
	DemoUsername      string        `env:"DEMO_USERNAME" envDefault:"sourav"`
	CORSAllowOrigins  string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	RateLimitPerMin   int           `env:"RATE_LIMIT_PER_MIN" envDefault:"60" validate:"gte=0"`
	// RateLimitRedisURL shares the /api buckets between instances. Empty keeps them in memory.
	RateLimitRedisURL     string        `env:"RATE_LIMIT_REDIS_URL" envDefault:"" validate:"omitempty,url"`
	HTTPHandlerTimeout    time.Duration `env:"HTTP_HANDLER_TIMEOUT" envDefault:"30s"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	HTTPIdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load parses environment variables into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	return cfg, nil
}

// Validate checks field constraints declared in the struct tags.
func (c Config) Validate() error {
	return validator.New().Struct(c)
}

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }

// IsTest reports whether the app is running in test mode.
func (c Config) IsTest() bool { return strings.ToLower(c.AppEnv) == "test" }

// LogExportEnabled reports whether log records leave the process.
func (c Config) LogExportEnabled() bool {
	return c.LogsExporter != LogsExporterNone && c.OTLPLogsEndpoint != ""
}

// SharedRateLimit reports whether /api buckets live in Redis.
func (c Config) SharedRateLimit() bool { return c.RateLimitPerMin > 0 && c.RateLimitRedisURL != "" }

// TraceExportEnabled reports whether spans leave the process.
func (c Config) TraceExportEnabled() bool { return c.OTLPTracesEndpoint != "" }
