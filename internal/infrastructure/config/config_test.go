package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "TaskBoard", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "taskboard", cfg.Database.Name)
	assert.Equal(t, "taskboard-api", cfg.JWT.Issuer)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestGetDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "board",
		Password: "secret",
		Name:     "taskboard",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=board password=secret dbname=taskboard sslmode=require",
		cfg.GetDSN())
}

func TestValidateConfig(t *testing.T) {
	valid := &Config{
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{Host: "localhost", Name: "taskboard"},
	}
	assert.NoError(t, validateConfig(valid))

	noHost := &Config{
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{Name: "taskboard"},
	}
	assert.Error(t, validateConfig(noHost))

	badPort := &Config{
		Server:   ServerConfig{Port: 0},
		Database: DatabaseConfig{Host: "localhost", Name: "taskboard"},
	}
	assert.Error(t, validateConfig(badPort))
}
