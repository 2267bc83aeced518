package config

import (
	"strings"
	"time"
)

const (
	defaultHTTPAddress         = ":5000"
	defaultTokenIssuer         = "go-shop"
	defaultTokenDuration       = 30 * 24 * time.Hour
	defaultPasswordCost        = 10
	defaultDBName              = "proshop"
	defaultDBTimeout           = 10 * time.Second
	defaultRequestTimeout      = 30 * time.Second
	defaultRateLimit           = 5
	defaultRateBurst           = 10
	defaultAdapterAddress      = "http://localhost:5000"
	defaultHealthCheckInterval = 15 * time.Second
)

// RateLimitDisabled turns the credential rate limiter off. A zero limit
// cannot do that because zero values are filled from the defaults.
const RateLimitDisabled = -1

// defaultConfig returns the lowest-priority configuration layer.
// HTTPAddress is left empty so that PORT can still be honoured, see applyPort.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Environment:   EnvDevelopment,
			TokenIssuer:   defaultTokenIssuer,
			TokenDuration: defaultTokenDuration,
			PasswordCost:  defaultPasswordCost,
		},
		Storage: Storage{
			DB: DB{
				Name:    defaultDBName,
				Timeout: defaultDBTimeout,
			},
		},
		Server: Server{
			RequestTimeout: defaultRequestTimeout,
			RateLimit:      defaultRateLimit,
			RateBurst:      defaultRateBurst,
		},
		Adapter: Adapter{
			HTTPAddress:    defaultAdapterAddress,
			RequestTimeout: defaultRequestTimeout,
		},
		Workers: Workers{
			HealthCheckInterval: defaultHealthCheckInterval,
		},
	}
}

// applyPort fills Server.HTTPAddress from Port when no address was configured
// and falls back to the default listen address otherwise.
func (cfg *StructuredConfig) applyPort() {
	if cfg.Server.HTTPAddress != "" {
		return
	}

	port := strings.TrimSpace(cfg.Port)
	if port == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
		return
	}

	if !strings.Contains(port, ":") {
		port = ":" + port
	}
	cfg.Server.HTTPAddress = port
}
