package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/empleados-api/pkg/config"
)

func setSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "jwt-secret")
	t.Setenv("HASH_SECRET", "hash-secret")
}

func TestLoad_ValoresPorDefecto(t *testing.T) {
	setSecrets(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, 60, cfg.Invite.TTLMinutes)
	assert.Equal(t, 5, cfg.Invite.CodeLength)
	assert.Equal(t, 10, cfg.Hash.Cost)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.Bootstrap.Enabled())
	assert.Equal(t, 30*time.Minute, cfg.Invite.ReportInterval())
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	setSecrets(t)
	t.Setenv("INVITE_TTL_MINUTES", "120")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Invite.TTLMinutes)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
}

func TestLoad_SinSecretosFalla(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("HASH_SECRET", "hash-secret")

	_, err := config.Load()
	assert.Error(t, err, "sin JWT_SECRET no debe arrancar")

	t.Setenv("JWT_SECRET", "jwt-secret")
	t.Setenv("HASH_SECRET", "")
	_, err = config.Load()
	assert.Error(t, err, "sin HASH_SECRET no debe arrancar")
}

func TestLoad_DriverDesconocido(t *testing.T) {
	setSecrets(t)
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "empleados", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/empleados?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
