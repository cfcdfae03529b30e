package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"PG_PORT", "JWT_ALGORITHM", "ACCESS_TOKEN_EXPIRE_MINUTES",
		"REFRESH_TOKEN_EXPIRE_DAYS", "REDIS_PORT", "RABBITMQ_PORT",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadEnvConfig()

	assert.Equal(t, "5432", cfg.Postgres.Port)
	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
	assert.Equal(t, 30, cfg.JWT.AccessExpireMinutes)
	assert.Equal(t, 7, cfg.JWT.RefreshExpireDays)
	assert.Equal(t, "6379", cfg.Redis.Port)
	assert.Equal(t, "5672", cfg.RabbitMQ.Port)
}

func TestLoadEnvConfigOverrides(t *testing.T) {
	t.Setenv("PG_HOST", "db.internal")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	t.Setenv("JWT_SECRET_KEY", "from-env")

	cfg := LoadEnvConfig()

	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 5, cfg.JWT.AccessExpireMinutes)
	assert.Equal(t, "from-env", cfg.JWT.SecretKey)
}
