package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-shop/internal/config"
	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/internal/service"
	"github.com/MKhiriev/go-shop/internal/store"
	"github.com/MKhiriev/go-shop/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeRecorder struct {
	store.Database
	closed int
}

func (c *closeRecorder) Close(ctx context.Context) error {
	c.closed++
	return c.Database.Close(ctx)
}

func TestRun_ClosesStorageOnStartupError(t *testing.T) {
	var recorder *closeRecorder
	orig := openStorages
	openStorages = func(ctx context.Context, cfg config.DB, log *logger.Logger) (*store.Storages, error) {
		s, err := orig(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		recorder = &closeRecorder{Database: s.Database}
		s.Database = recorder
		return s, nil
	}
	t.Cleanup(func() { openStorages = orig })

	cfg := &config.StructuredConfig{
		App:     config.App{Environment: config.EnvDevelopment, TokenSignKey: "secret", PasswordCost: 4},
		Storage: config.Storage{DB: config.DB{DSN: "sqlite://" + filepath.Join(t.TempDir(), "shop.db")}},
		Server:  config.Server{HTTPAddress: "127.0.0.1:0"},
	}

	// a build without a version makes service wiring fail after the storage is open
	err := run(context.Background(), cfg, models.NewAppBuildInfo("", "", ""), logger.Nop())

	require.ErrorIs(t, err, service.ErrVersionIsNotSpecified)
	require.NotNil(t, recorder)
	assert.Equal(t, 1, recorder.closed)
}

func TestRun_StorageError(t *testing.T) {
	cfg := &config.StructuredConfig{Storage: config.Storage{DB: config.DB{DSN: "redis://localhost:6379"}}}

	err := run(context.Background(), cfg, models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop())
	assert.ErrorIs(t, err, store.ErrUnsupportedDriver)
}
