package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "fleet-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 30*time.Second, cfg.Sync.FetchTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Sync.CompanyCacheTTL)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.CollectorEndpoint)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
	assert.Equal(t, 60*time.Second, cfg.Telemetry.MetricsInterval)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FLEET_APP_PORT", "9090")
	t.Setenv("FLEET_DATABASE_HOST", "db.internal")
	t.Setenv("FLEET_SYNC_FETCH_TIMEOUT", "10s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 10*time.Second, cfg.Sync.FetchTimeout)
}

func TestLoad_ProductionRequiresJWTSecret(t *testing.T) {
	t.Setenv("FLEET_APP_ENV", "production")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("FLEET_JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "h", Port: 5433, User: "u", Password: "p", DBName: "d", SSLMode: "require"}
	assert.Equal(t, "host=h port=5433 user=u password=p dbname=d sslmode=require", db.DSN())
}

func TestValidate_SamplingRatioRange(t *testing.T) {
	t.Setenv("FLEET_TELEMETRY_SAMPLING_RATIO", "2.5")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_FetchTimeoutFloor(t *testing.T) {
	t.Setenv("FLEET_SYNC_FETCH_TIMEOUT", "100ms")

	_, err := Load()
	assert.Error(t, err)
}
