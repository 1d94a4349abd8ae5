package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PREP_TOOL_PORT", "DB_DRIVER", "DB_CONNECTION_STRING", "PREP_TOOL_USER", "PREP_TOOL_PASS", "REDIS_URL", "NATS_URL", "OTEL_ENABLED"} {
		t.Setenv(key, "")
	}
	t.Setenv("PREP_TOOL_PORT", "5050")
	t.Setenv("DB_DRIVER", "SQLite")

	cfg := Load()

	assert.Equal(t, "5050", cfg.App.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.False(t, cfg.Auth.Enabled())
	assert.False(t, cfg.Tracing.Enabled)
	assert.Empty(t, cfg.App.RedisURL)
}

func TestAuthEnabledNeedsBoth(t *testing.T) {
	tests := []struct {
		name string
		auth AuthConfig
		want bool
	}{
		{"both", AuthConfig{User: "coach", Pass: "secret"}, true},
		{"user only", AuthConfig{User: "coach"}, false},
		{"pass only", AuthConfig{Pass: "secret"}, false},
		{"neither", AuthConfig{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.auth.Enabled())
		})
	}
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "true")
	assert.True(t, getEnvAsBool("OTEL_ENABLED", false))

	t.Setenv("OTEL_ENABLED", "nope")
	assert.False(t, getEnvAsBool("OTEL_ENABLED", false))
}
