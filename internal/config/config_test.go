package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		DBDSN:          "postgres://localhost/studio",
		ServerPort:     "8080",
		SessionSecret:  "0123456789abcdef0123",
		CacheTTL:       time.Minute,
		RateLimitRPS:   2,
		RateLimitBurst: 10,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "ok", mutate: func(*Config) {}},
		{name: "missing dsn", mutate: func(c *Config) { c.DBDSN = "" }, errMsg: "DB_DSN"},
		{name: "missing secret", mutate: func(c *Config) { c.SessionSecret = "" }, errMsg: "SESSION_SECRET is not set"},
		{name: "short secret", mutate: func(c *Config) { c.SessionSecret = "short" }, errMsg: "at least 16"},
		{name: "bad port", mutate: func(c *Config) { c.ServerPort = "80a" }, errMsg: "SERVER_PORT"},
		{name: "zero ttl", mutate: func(c *Config) { c.CacheTTL = 0 }, errMsg: "CACHE_TTL"},
		{name: "zero burst", mutate: func(c *Config) { c.RateLimitBurst = 0 }, errMsg: "RATE_LIMIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "forty")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_DURATION", "90s")
	t.Setenv("TEST_FLOAT", "0.5")
	t.Setenv("TEST_SPACES", "   ")

	assert.Equal(t, 42, getEnvInt("TEST_INT", 1))
	assert.Equal(t, 1, getEnvInt("TEST_BAD_INT", 1))
	assert.True(t, getEnvBool("TEST_BOOL", false))
	assert.Equal(t, 90*time.Second, getEnvDuration("TEST_DURATION", time.Second))
	assert.InDelta(t, 0.5, getEnvFloat("TEST_FLOAT", 1), 0.0001)
	assert.Equal(t, "fallback", getEnv("TEST_SPACES", "fallback"))
	assert.Equal(t, "fallback", getEnv("TEST_UNSET_KEY", "fallback"))
}
