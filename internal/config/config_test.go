package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("JWT_SECRET", "dev-secret")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.True(t, cfg.IsDevelopment())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://db/prod")
	t.Setenv("JWT_SECRET", "a-long-production-secret")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("JWT_TTL", "30m")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 30*time.Minute, cfg.JWT.TTL)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	ok := Config{
		App:      AppConfig{Env: "production"},
		Database: DatabaseConfig{URL: "postgres://x"},
		JWT:      JWTConfig{Secret: "0123456789abcdef", TTL: time.Hour},
	}
	assert.NoError(t, ok.Validate())

	noDB := ok
	noDB.Database.URL = ""
	assert.ErrorContains(t, noDB.Validate(), "DATABASE_URL")

	short := ok
	short.JWT.Secret = "short"
	assert.ErrorContains(t, short.Validate(), "at least 16")

	devShort := short
	devShort.App.Env = "development"
	assert.NoError(t, devShort.Validate())
}
