package config

import "time"

// MarketplaceConfig holds the chain relay used to accept marketplace offers
type MarketplaceConfig struct {
	// Base URL of the JSON relay that signs and submits transactions
	RelayURL string `mapstructure:"relay_url" validate:"required,url"`

	// Marketplace contract address
	ContractAddress string `mapstructure:"contract_address" validate:"required"`

	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Per-request HTTP timeout. Receipt polling is bounded by the caller's context.
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	// Delay between receipt polls
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"required"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}
