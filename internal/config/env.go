package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment, including variables that
// withDotEnv loaded from .env. Names come from the env/envPrefix tags, e.g.
// App.TokenSignKey is APP_TOKEN_SIGN_KEY.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
