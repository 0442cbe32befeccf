package config_test

import (
	"testing"
	"time"

	"flowtasks/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, 200*time.Millisecond, cfg.LatencyMin)
	assert.Equal(t, 300*time.Millisecond, cfg.LatencyMax)
	assert.Equal(t, "work", cfg.DefaultList)
	assert.Equal(t, 5, cfg.CompletedPreview)
	assert.True(t, cfg.SeedData)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("LATENCY_MIN", "0s")
	t.Setenv("LATENCY_MAX", "15ms")
	t.Setenv("DEFAULT_LIST", "Personal")
	t.Setenv("COMPLETED_PREVIEW", "10")
	t.Setenv("SEED_DATA", "false")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://tasks.example.com")

	cfg := config.Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Zero(t, cfg.LatencyMin)
	assert.Equal(t, 15*time.Millisecond, cfg.LatencyMax)
	assert.Equal(t, "personal", cfg.DefaultList)
	assert.Equal(t, 10, cfg.CompletedPreview)
	assert.False(t, cfg.SeedData)
	assert.Equal(t, []string{"http://localhost:5173", "https://tasks.example.com"}, cfg.CORSOrigins)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("LATENCY_MIN", "soon")
	t.Setenv("COMPLETED_PREVIEW", "many")
	t.Setenv("SEED_DATA", "maybe")

	cfg := config.Load()

	assert.Equal(t, 200*time.Millisecond, cfg.LatencyMin)
	assert.Equal(t, 5, cfg.CompletedPreview)
	assert.True(t, cfg.SeedData)
}

func TestConfig_DSN(t *testing.T) {
	cfg := &config.Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.DSN())
}
