package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// testBuilder returns a builder that ignores the test binary arguments and
// reads .env from an empty temp dir.
func testBuilder(t *testing.T) *configBuilder {
	t.Helper()
	b := newConfigBuilder()
	b.args = nil
	b.dotEnvPath = filepath.Join(t.TempDir(), ".env")
	return b
}

func minimalValidConfig() *StructuredConfig {
	return &StructuredConfig{
		App:     App{TokenSignKey: "secret"},
		Storage: Storage{DB: DB{DSN: "mongodb://localhost:27017"}},
	}
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
	assert.Equal(t, ".env", b.dotEnvPath)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that a builder without any source fails
// validation.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := testBuilder(t).build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
	assert.NotNil(t, cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := testBuilder(t)
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_FirstSourceWins verifies that an earlier config keeps its values
// and later configs only fill the gaps.
func TestBuild_FirstSourceWins(t *testing.T) {
	b := testBuilder(t)
	b.configs = append(b.configs,
		&StructuredConfig{App: App{TokenIssuer: "env-issuer"}},
		&StructuredConfig{App: App{TokenIssuer: "flag-issuer", Version: "1.0.0"}},
	)
	b.withDefaults()
	b.configs = append(b.configs, minimalValidConfig())

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "env-issuer", cfg.App.TokenIssuer)
	assert.Equal(t, "1.0.0", cfg.App.Version)
}

// TestBuild_AppliesDefaults verifies the default layer and driver inference.
func TestBuild_AppliesDefaults(t *testing.T) {
	b := testBuilder(t)
	b.configs = append(b.configs, minimalValidConfig())
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.App.Environment)
	assert.Equal(t, 720*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, 10, cfg.App.PasswordCost)
	assert.Equal(t, "proshop", cfg.Storage.DB.Name)
	assert.Equal(t, DriverMongo, cfg.Storage.DB.Driver)
	assert.Equal(t, ":5000", cfg.Server.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Workers.HealthCheckInterval)
}

// TestBuild_RateLimitFromEnv verifies that a zero limit falls back to the
// default while a negative one survives the merge and disables the limiter.
func TestBuild_RateLimitFromEnv(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  float64
	}{
		{name: "zero uses default", value: "0", want: defaultRateLimit},
		{name: "negative disables", value: "-1", want: RateLimitDisabled},
		{name: "explicit", value: "2", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			t.Setenv("APP_TOKEN_SIGN_KEY", "secret")
			t.Setenv("STORAGE_DB_DATABASE_URI", "sqlite://shop.db")
			t.Setenv("SERVER_RATE_LIMIT", tt.value)

			cfg, err := testBuilder(t).withEnv().withDefaults().build()
			require.NoError(t, err)
			assert.InDelta(t, tt.want, cfg.Server.RateLimit, 1e-9)
		})
	}
}

// TestBuild_PortFallback verifies how PORT interacts with the HTTP address.
func TestBuild_PortFallback(t *testing.T) {
	tests := []struct {
		name    string
		port    string
		address string
		want    string
	}{
		{name: "bare port", port: "8000", want: ":8000"},
		{name: "port with colon", port: ":8001", want: ":8001"},
		{name: "address wins over port", port: "8000", address: "127.0.0.1:9000", want: "127.0.0.1:9000"},
		{name: "nothing set", want: ":5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testBuilder(t)
			cfg := minimalValidConfig()
			cfg.Port = tt.port
			cfg.Server.HTTPAddress = tt.address
			b.configs = append(b.configs, cfg)
			b.withDefaults()

			got, err := b.build()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Server.HTTPAddress)
		})
	}
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{name: "missing sign key", mutate: func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "unknown run mode", mutate: func(cfg *StructuredConfig) { cfg.App.Environment = "staging" }, wantErr: ErrInvalidAppConfigs},
		{name: "password cost too low", mutate: func(cfg *StructuredConfig) { cfg.App.PasswordCost = 1 }, wantErr: ErrInvalidAppConfigs},
		{name: "missing dsn", mutate: func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "unknown driver", mutate: func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = "oracle" }, wantErr: ErrInvalidStorageConfigs},
		{name: "negative burst", mutate: func(cfg *StructuredConfig) { cfg.Server.RateLimit, cfg.Server.RateBurst = 5, -1 }, wantErr: ErrInvalidServerConfigs},
		{name: "limiter disabled", mutate: func(cfg *StructuredConfig) { cfg.Server.RateLimit, cfg.Server.RateBurst = RateLimitDisabled, 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := minimalValidConfig()
			cfg.App.Environment = EnvProduction
			cfg.App.PasswordCost = 10
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuildClient_IgnoresServerSecrets(t *testing.T) {
	cfg, err := testBuilder(t).withDefaults().buildClient()

	require.NoError(t, err)
	assert.Equal(t, defaultAdapterAddress, cfg.Adapter.HTTPAddress)
	assert.Empty(t, cfg.App.TokenSignKey)
}

func TestBuildClient_RejectsNegativeTimeout(t *testing.T) {
	b := testBuilder(t)
	b.configs = append(b.configs, &StructuredConfig{Adapter: Adapter{RequestTimeout: -time.Second}})

	_, err := b.withDefaults().buildClient()
	assert.ErrorIs(t, err, ErrInvalidAdapterConfigs)
}

func TestBuildSeeder_NeedsNoSignKey(t *testing.T) {
	b := testBuilder(t)
	b.configs = append(b.configs, &StructuredConfig{Storage: Storage{DB: DB{DSN: "sqlite://shop.db"}}})

	cfg, err := b.withDefaults().buildSeeder()
	require.NoError(t, err)
	assert.Empty(t, cfg.App.TokenSignKey)
	assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
	assert.Equal(t, defaultPasswordCost, cfg.App.PasswordCost)
}

func TestBuildSeeder_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *StructuredConfig
		wantErr error
	}{
		{name: "missing dsn", cfg: &StructuredConfig{}, wantErr: ErrInvalidStorageConfigs},
		{name: "unknown scheme", cfg: &StructuredConfig{Storage: Storage{DB: DB{DSN: "redis://localhost"}}}, wantErr: ErrInvalidStorageConfigs},
		{
			name:    "password cost too high",
			cfg:     &StructuredConfig{App: App{PasswordCost: 99}, Storage: Storage{DB: DB{DSN: "sqlite://shop.db"}}},
			wantErr: ErrInvalidAppConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testBuilder(t)
			b.configs = append(b.configs, tt.cfg)

			_, err := b.withDefaults().buildSeeder()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDB_ResolveDriver(t *testing.T) {
	tests := []struct {
		name    string
		db      DB
		want    string
		wantErr bool
	}{
		{name: "explicit driver", db: DB{Driver: DriverSQLite, DSN: "mongodb://x"}, want: DriverSQLite},
		{name: "mongodb scheme", db: DB{DSN: "mongodb://localhost:27017"}, want: DriverMongo},
		{name: "mongodb srv scheme", db: DB{DSN: "mongodb+srv://cluster0.example.net"}, want: DriverMongo},
		{name: "postgres scheme", db: DB{DSN: "postgres://u:p@localhost/shop"}, want: DriverPostgres},
		{name: "postgresql scheme", db: DB{DSN: "postgresql://u:p@localhost/shop"}, want: DriverPostgres},
		{name: "sqlite scheme", db: DB{DSN: "sqlite://shop.db"}, want: DriverSQLite},
		{name: "file uri", db: DB{DSN: "file:shop.db?cache=shared"}, want: DriverSQLite},
		{name: "unknown scheme", db: DB{DSN: "mysql://localhost"}, wantErr: true},
		{name: "no scheme", db: DB{DSN: "shop.db"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.db.ResolveDriver()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── withDotEnv ────────────────────────────────────────────────────────────────

// TestWithDotEnv_MissingFileIsIgnored verifies that no .env file is not an error.
func TestWithDotEnv_MissingFileIsIgnored(t *testing.T) {
	b := testBuilder(t)
	assert.Same(t, b, b.withDotEnv())
	assert.NoError(t, b.err)
}

// TestWithDotEnv_LoadsWithoutOverriding verifies that .env values reach the
// environment but do not replace variables that are already set.
func TestWithDotEnv_LoadsWithoutOverriding(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("APP_TOKEN_ISSUER", "from-env")

	b := testBuilder(t)
	content := "APP_TOKEN_ISSUER=from-dotenv\nAPP_VERSION=3.1.4\n"
	require.NoError(t, os.WriteFile(b.dotEnvPath, []byte(content), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("APP_VERSION") })

	b.withDotEnv().withEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "from-env", b.configs[0].App.TokenIssuer)
	assert.Equal(t, "3.1.4", b.configs[0].App.Version)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("STORAGE_DB_DATABASE_URI", "sqlite://shop.db")

	b := testBuilder(t)
	assert.Same(t, b, b.withEnv())

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "sqlite://shop.db", b.configs[0].Storage.DB.DSN)
}

// TestWithEnv_SetsErrorOnInvalidValue verifies that a bad env value is kept
// as a builder error.
func TestWithEnv_SetsErrorOnInvalidValue(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("SERVER_RATE_BURST", "many")

	b := testBuilder(t).withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_ReadsArgs verifies that builder args are parsed into a config.
func TestWithFlags_ReadsArgs(t *testing.T) {
	b := testBuilder(t)
	b.args = []string{"-d", "postgres://localhost/shop", "-token-sign-key", "flag-key"}

	assert.Same(t, b, b.withFlags())
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "postgres://localhost/shop", b.configs[0].Storage.DB.DSN)
	assert.Equal(t, "flag-key", b.configs[0].App.TokenSignKey)
}

// TestWithFlags_SetsErrorOnBadFlag verifies that parse errors are collected.
func TestWithFlags_SetsErrorOnBadFlag(t *testing.T) {
	b := testBuilder(t)
	b.args = []string{"-a", "nowhere"}

	b.withFlags()
	assert.Error(t, b.err)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := testBuilder(t)
	b.configs = append(b.configs, &StructuredConfig{})
	assert.Same(t, b, b.withJSON())

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_AppendsConfig_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.App.TokenIssuer = "json-issuer"
	path := writeTempJSONConfig(t, payload)

	b := testBuilder(t)
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, "json-issuer", b.configs[1].App.TokenIssuer)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := testBuilder(t)
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesFirstPath verifies that the path from the highest-priority
// source is used.
func TestWithJSON_UsesFirstPath(t *testing.T) {
	first := StructuredJSONConfig{}
	first.App.Version = "first-wins"
	second := StructuredJSONConfig{}
	second.App.Version = "ignored"

	b := testBuilder(t)
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, first)},
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, second)},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "first-wins", b.configs[2].App.Version)
}

// TestBuilder_FullChain runs every layer together with a JSON file that fills
// the fields the environment leaves empty.
func TestBuilder_FullChain(t *testing.T) {
	clearEnvVars(t)
	payload := StructuredJSONConfig{}
	payload.App.TokenSignKey = "json-key"
	payload.Storage.DB.DSN = "sqlite://shop.db"
	payload.Port = "7000"
	path := writeTempJSONConfig(t, payload)

	t.Setenv("CONFIG", path)
	t.Setenv("APP_ENV", "production")

	b := testBuilder(t)
	cfg, err := b.withDotEnv().withEnv().withFlags().withJSON().withDefaults().build()

	require.NoError(t, err)
	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, "json-key", cfg.App.TokenSignKey)
	assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
	assert.Equal(t, ":7000", cfg.Server.HTTPAddress)
}
