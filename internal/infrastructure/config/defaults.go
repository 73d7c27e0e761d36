package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "homestead.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "homestead"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "homestead"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	// Metrics defaults
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Marketplace defaults
	if cfg.Marketplace.RelayURL == "" {
		cfg.Marketplace.RelayURL = "http://localhost:8545"
	}
	if cfg.Marketplace.ContractAddress == "" {
		cfg.Marketplace.ContractAddress = "0x0000000000000000000000000000000000000000"
	}
	if cfg.Marketplace.Timeout == 0 {
		cfg.Marketplace.Timeout = 30 * time.Second
	}
	if cfg.Marketplace.PollInterval == 0 {
		cfg.Marketplace.PollInterval = 2 * time.Second
	}
	if cfg.Marketplace.RateLimit.Requests == 0 {
		cfg.Marketplace.RateLimit.Requests = 2
	}
	if cfg.Marketplace.RateLimit.Burst == 0 {
		cfg.Marketplace.RateLimit.Burst = 5
	}

	// Server defaults
	if cfg.Server.Address == "" {
		cfg.Server.Address = "localhost:8080"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.PIDFile == "" {
		cfg.Server.PIDFile = "homestead.pid"
	}
	if cfg.Server.Auth.Issuer == "" {
		cfg.Server.Auth.Issuer = "homestead"
	}
	if cfg.Server.Auth.TokenTTL == 0 {
		cfg.Server.Auth.TokenTTL = 24 * time.Hour
	}

	// Tracing defaults
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = "homestead"
	}
}
