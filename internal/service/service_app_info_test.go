package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-shop/internal/config"
	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.App
		build       models.AppBuildInfo
		wantVersion string
		wantErr     error
	}{
		{
			name:        "configured version",
			cfg:         config.App{Version: "1.0.0"},
			build:       models.NewAppBuildInfo("", "", ""),
			wantVersion: "1.0.0",
		},
		{
			name:        "configured version wins over build",
			cfg:         config.App{Version: "2.0.0"},
			build:       models.NewAppBuildInfo("1.9.0", "2026-01-01", "abc123"),
			wantVersion: "2.0.0",
		},
		{
			name:        "build version fallback",
			build:       models.NewAppBuildInfo("1.9.0", "2026-01-01", "abc123"),
			wantVersion: "1.9.0",
		},
		{
			name:    "no version at all",
			build:   models.NewAppBuildInfo("", "", ""),
			wantErr: ErrVersionIsNotSpecified,
		},
		{
			name:    "zero build info",
			wantErr: ErrVersionIsNotSpecified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAppInfoService(tt.cfg, tt.build, logger.Nop())
			if tt.wantErr != nil {
				assert.Nil(t, svc)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, svc.GetAppVersion(context.Background()))
		})
	}
}

// ─────────────────────────────────────────────
// GetBuildInfo
// ─────────────────────────────────────────────

func TestGetBuildInfo_KeepsBuildMetadata(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "3.1.4"}, models.NewAppBuildInfo("3.0.0", "2026-05-05", "deadbeef"), logger.Nop())
	require.NoError(t, err)

	info := svc.GetBuildInfo(context.Background())

	assert.Equal(t, "3.1.4", info.Version)
	assert.Equal(t, "2026-05-05", info.BuildDate)
	assert.Equal(t, "deadbeef", info.BuildCommit)
}

func TestGetAppVersion_CancelledContext_StillReturnsVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, "1.0.0", svc.GetAppVersion(ctx))
}
