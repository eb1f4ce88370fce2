package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolConfig_CarriesDatabaseSettings(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "db.internal",
			Port:     5433,
			User:     "app",
			Password: "secret",
			Database: "soundreel",
			SSLMode:  "verify-full",
			MaxConns: 40,
			MinConns: 8,
		},
	}

	pool := cfg.PoolConfig()

	assert.Equal(t, "db.internal", pool.Host)
	assert.Equal(t, 5433, pool.Port)
	assert.Equal(t, "app", pool.Username)
	assert.Equal(t, "secret", pool.Password)
	assert.Equal(t, "soundreel", pool.DBName)
	assert.Equal(t, "verify-full", pool.SSLMode)
	assert.Equal(t, int32(40), pool.MaxConns)
	assert.Equal(t, int32(8), pool.MinConns)
}
