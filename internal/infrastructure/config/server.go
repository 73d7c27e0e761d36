package config

import "time"

// ServerConfig holds the HTTP dispatch endpoint served by `homestead serve`
type ServerConfig struct {
	// Listen address (host:port)
	Address string `mapstructure:"address" validate:"required"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`

	// Lock file that keeps a second server off the same database
	PIDFile string `mapstructure:"pid_file" validate:"required"`

	Auth AuthConfig `mapstructure:"auth"`
}

// AuthConfig holds farm access tokens. Requests are not authenticated when
// Secret is empty.
type AuthConfig struct {
	// HMAC key for signing and verifying tokens
	Secret string `mapstructure:"secret" validate:"omitempty,min=32"`

	Issuer string `mapstructure:"issuer" validate:"required"`

	// Lifetime of tokens issued by `homestead farm token`
	TokenTTL time.Duration `mapstructure:"token_ttl" validate:"required"`
}

// Enabled reports whether the API requires tokens
func (c AuthConfig) Enabled() bool {
	return c.Secret != ""
}
