package config

// TracingConfig controls OpenTelemetry span export. Tracing stays off until
// both Enabled and Endpoint are set.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// OTLP/HTTP collector URL, e.g. http://localhost:4318
	Endpoint string `mapstructure:"endpoint" validate:"required_if=Enabled true,omitempty,url"`

	ServiceName string `mapstructure:"service_name"`
}
