// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid*Configs sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}

	if cfg.App.Environment != EnvDevelopment && cfg.App.Environment != EnvProduction {
		return fmt.Errorf("%w: unknown run mode %q", ErrInvalidAppConfigs, cfg.App.Environment)
	}

	if err := cfg.validateSeeder(); err != nil {
		return err
	}

	if cfg.Server.RateLimit > 0 && cfg.Server.RateBurst <= 0 {
		return fmt.Errorf("%w: rate burst must be positive", ErrInvalidServerConfigs)
	}

	return nil
}

// validateSeeder checks what creating users directly in the store needs:
// a reachable storage and a usable bcrypt cost.
func (cfg *StructuredConfig) validateSeeder() error {
	if cfg.App.PasswordCost < bcrypt.MinCost || cfg.App.PasswordCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: password cost %d out of range", ErrInvalidAppConfigs, cfg.App.PasswordCost)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database URI is required", ErrInvalidStorageConfigs)
	}

	driver, err := cfg.Storage.DB.ResolveDriver()
	if err != nil {
		return err
	}
	cfg.Storage.DB.Driver = driver

	return nil
}

func (cfg *StructuredConfig) validateClient() error {
	if strings.TrimSpace(cfg.Adapter.HTTPAddress) == "" {
		return fmt.Errorf("%w: server address is required", ErrInvalidAdapterConfigs)
	}
	if cfg.Adapter.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidAdapterConfigs)
	}

	return nil
}

// ResolveDriver returns the configured driver or infers it from the DSN
// scheme when Driver is empty.
func (db DB) ResolveDriver() (string, error) {
	switch db.Driver {
	case DriverMongo, DriverPostgres, DriverSQLite:
		return db.Driver, nil
	case "":
	default:
		return "", fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, db.Driver)
	}

	scheme, _, found := strings.Cut(db.DSN, "://")
	if !found {
		scheme, _, found = strings.Cut(db.DSN, ":")
	}
	if !found {
		return "", fmt.Errorf("%w: cannot infer driver from database URI", ErrInvalidStorageConfigs)
	}

	switch strings.ToLower(scheme) {
	case "mongodb", "mongodb+srv":
		return DriverMongo, nil
	case "postgres", "postgresql":
		return DriverPostgres, nil
	case "sqlite", "sqlite3", "file":
		return DriverSQLite, nil
	default:
		return "", fmt.Errorf("%w: unsupported database URI scheme %q", ErrInvalidStorageConfigs, scheme)
	}
}
