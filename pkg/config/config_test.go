package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_STORAGE", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StoragePostgres, cfg.App.Storage)
	assert.Equal(t, "es-CO", cfg.App.Locale)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 480, cfg.JWT.Expiration)
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("APP_STORAGE", "MEMORY")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StorageMemory, cfg.App.Storage)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_StorageInvalido(t *testing.T) {
	t.Setenv("APP_STORAGE", "mongo")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ProductionExigeSecret(t *testing.T) {
	t.Setenv("APP_STORAGE", "memory")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "cafe", Password: "p@ss:word", DBName: "cafe_pos", SSLMode: "disable"}
	assert.Equal(t, "postgres://cafe:p%40ss%3Aword@db:5432/cafe_pos?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", c.ConnectionString())
}
