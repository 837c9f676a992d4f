package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "TRANSIT_PROVIDER", "ENGINE_ORACLE_WORKERS",
		"ENGINE_BACKFILL_QUERY_CAP", "ENGINE_TOP_K", "PLACE_SEARCH_REGION",
		"ALLOWED_ORIGINS",
	} {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "static", cfg.Transit.Provider)
	assert.Equal(t, "jp", cfg.PlaceSearch.Region)
	assert.Equal(t, 8, cfg.Engine.OracleWorkers)
	assert.Equal(t, 15, cfg.Engine.BackfillQueryCap)
	assert.Equal(t, 3, cfg.Engine.BackfillQueryTimeoutSeconds)
	assert.Equal(t, 10, cfg.Engine.TopK)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestLoad_AllowedOriginsFromEnv(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t,
		[]string{"https://app.example.com", "https://admin.example.com"},
		cfg.Server.AllowedOrigins)
}

func TestLoad_EngineOverrides(t *testing.T) {
	os.Setenv("ENGINE_ORACLE_WORKERS", "4")
	os.Setenv("ENGINE_BACKFILL_QUERY_CAP", "20")
	os.Setenv("ENGINE_TOP_K", "5")
	defer func() {
		os.Unsetenv("ENGINE_ORACLE_WORKERS")
		os.Unsetenv("ENGINE_BACKFILL_QUERY_CAP")
		os.Unsetenv("ENGINE_TOP_K")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 4, cfg.Engine.OracleWorkers)
	assert.Equal(t, 20, cfg.Engine.BackfillQueryCap)
	assert.Equal(t, 5, cfg.Engine.TopK)
}

func TestLoad_InvalidIntFallsBackToDefault(t *testing.T) {
	os.Setenv("ENGINE_TOP_K", "not-a-number")
	defer os.Unsetenv("ENGINE_TOP_K")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 10, cfg.Engine.TopK)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "secret",
		Database: "meetspot", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=app password=secret dbname=meetspot sslmode=disable",
		cfg.DatabaseDSN(),
	)
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache", Port: 6379}
	assert.Equal(t, "cache:6379", cfg.RedisAddr())
}
