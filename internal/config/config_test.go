package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "0 7 * * *", cfg.ClockCronSpec)
	assert.Contains(t, cfg.RatesURL, "eurofxref-daily.xml")
	assert.Equal(t, "587", cfg.SMTPPort)
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("CLOCK_CRON", "*/5 * * * *")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "super-secret", cfg.JWTSecret)
	assert.Equal(t, "*/5 * * * *", cfg.ClockCronSpec)
}
