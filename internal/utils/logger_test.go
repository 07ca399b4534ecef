package utils

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localewatch/localewatch/internal/config"
)

func TestInitLogger(t *testing.T) {
	origLevel := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(origLevel)

	cfg := &config.AppConfig{}
	cfg.App.Name = "localewatch"
	cfg.App.Version = "1.0.0"
	cfg.App.Environment = "testing"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	InitLogger(cfg)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	// Invalid level falls back to info instead of failing
	cfg.Logging.Level = "chatty"
	InitLogger(cfg)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSetLogLevel(t *testing.T) {
	origLevel := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(origLevel)

	require.NoError(t, SetLogLevel("warn"))
	assert.Equal(t, "warn", GetLogLevel())

	assert.Error(t, SetLogLevel("shouting"))
	assert.Equal(t, "warn", GetLogLevel(), "failed change should not alter the level")
}

func TestLogSinksDoNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		LogDebugEvent("settings updated", map[string]interface{}{
			"actor_id": int64(7),
			"sections": 4,
			"enabled":  true,
			"ratio":    0.5,
			"label":    "LocaleWatch",
			"raw":      []string{"de_de"},
		})
	})

	assert.NotPanics(t, func() {
		LogError(assert.AnError, map[string]interface{}{"stage": "persist"})
	})

	assert.NotPanics(t, func() {
		LogHTTPRequest("req-1", "POST", "/api/settings", "203.0.113.9", "test-agent", 200, 5*time.Millisecond)
		LogHTTPRequest("req-2", "GET", "/health", "203.0.113.9", "probe", 200, time.Millisecond)
		LogHTTPRequest("req-3", "POST", "/api/settings", "203.0.113.9", "test-agent", 429, time.Millisecond)
	})

	assert.NotPanics(t, func() {
		LogDBQuery("UPDATE options SET option_value = ? WHERE option_name = ?", []interface{}{"secret-value", "localewatch_settings"}, time.Millisecond, nil)
		LogDBQuery("SELECT option_value FROM options", nil, time.Millisecond, assert.AnError)
	})

	assert.NotPanics(t, func() {
		LogSecurityDenied(7, "update_settings", "invalid nonce")
	})
}
