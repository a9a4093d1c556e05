package instrumentation

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration for OpenTelemetry instrumentation.
type Config struct {
	ServiceName       string `envconfig:"OTEL_SERVICE_NAME" default:"workspace-mcp"`
	ServiceVersion    string `ignored:"true"`
	ServiceInstanceID string `envconfig:"OTEL_SERVICE_INSTANCE_ID"`

	// Enabled turns metrics and tracing on or off as a whole.
	Enabled bool `envconfig:"INSTRUMENTATION_ENABLED" default:"true"`

	// MetricsExporter is one of prometheus, otlp, stdout.
	MetricsExporter string `envconfig:"METRICS_EXPORTER" default:"prometheus"`

	// TracingExporter is one of otlp, stdout, none.
	TracingExporter string `envconfig:"TRACING_EXPORTER" default:"none"`

	// OTLPEndpoint is host:port without a scheme, e.g. localhost:4318.
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"false"`

	TraceSamplingRate float64 `envconfig:"OTEL_TRACES_SAMPLER_ARG" default:"0.1"`

	AuditEnabled bool `envconfig:"AUDIT_LOGGING_ENABLED" default:"true"`
}

// DefaultConfig reads the configuration from the environment, falling back
// to the defaults above for unset or unparsable values.
func DefaultConfig() Config {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		c = Config{
			ServiceName:       "workspace-mcp",
			Enabled:           true,
			MetricsExporter:   ExporterPrometheus,
			TracingExporter:   ExporterNone,
			TraceSamplingRate: 0.1,
			AuditEnabled:      true,
		}
	}
	c.ServiceVersion = "unknown"
	return c
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0.0 and 1.0, got %f", c.TraceSamplingRate)
	}

	switch c.MetricsExporter {
	case "", ExporterPrometheus, ExporterOTLP, ExporterStdout:
	default:
		return fmt.Errorf("invalid metrics exporter %q, must be one of: prometheus, otlp, stdout", c.MetricsExporter)
	}

	switch c.TracingExporter {
	case "", ExporterOTLP, ExporterStdout, ExporterNone:
	default:
		return fmt.Errorf("invalid tracing exporter %q, must be one of: otlp, stdout, none", c.TracingExporter)
	}

	if (c.TracingExporter == ExporterOTLP || c.MetricsExporter == ExporterOTLP) && c.OTLPEndpoint == "" {
		return fmt.Errorf("OTLP endpoint is required when using an OTLP exporter")
	}
	return nil
}

// Label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"

	OAuthResultSuccess = "success"
	OAuthResultFailure = "failure"

	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"
)
