// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("testdata/does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "https://mempool.space", cfg.MempoolBaseURL)
	assert.Equal(t, "https://api.coingecko.com/api/v3", cfg.CoinGeckoBaseURL)
	assert.Equal(t, "usd", cfg.VsCurrency)
	assert.Equal(t, 180, cfg.UpdateInterval)
	assert.Equal(t, 100000.0, cfg.AthReference)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "full", cfg.Display.Mode)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.HTTPEnabled)
	assert.Equal(t, 8080, cfg.Logging.HTTPPort)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("UPDATE_INTERVAL", "60")
	t.Setenv("ATH_REFERENCE_PRICE", "120000")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("DISPLAY_MODE", "compact")
	t.Setenv("HTTP_ENABLED", "true")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := LoadConfig("testdata/does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.UpdateInterval)
	assert.Equal(t, 120000.0, cfg.AthReference)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.IsCompactDisplay())
	assert.True(t, cfg.Logging.HTTPEnabled)
	assert.Equal(t, 9090, cfg.Logging.HTTPPort)
}

func TestLoadConfig_InvalidDisplayMode(t *testing.T) {
	t.Setenv("DISPLAY_MODE", "fancy")

	_, err := LoadConfig("testdata/does-not-exist.env")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISPLAY_MODE")
}

func TestLoadConfig_InvalidInterval(t *testing.T) {
	t.Setenv("UPDATE_INTERVAL", "-5")

	_, err := LoadConfig("testdata/does-not-exist.env")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPDATE_INTERVAL")
}

func TestLoadConfig_InvalidHTTPPort(t *testing.T) {
	t.Setenv("HTTP_ENABLED", "true")
	t.Setenv("HTTP_PORT", "70000")

	_, err := LoadConfig("testdata/does-not-exist.env")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_PORT")
}

func TestLoadConfig_BadValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("UPDATE_INTERVAL", "not-a-number")
	t.Setenv("ATH_REFERENCE_PRICE", "abc")

	cfg, err := LoadConfig("testdata/does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, 180, cfg.UpdateInterval)
	assert.Equal(t, 100000.0, cfg.AthReference)
}

func TestGetUpdateInterval(t *testing.T) {
	cfg := &Config{UpdateInterval: 90}
	assert.Equal(t, 90*time.Second, cfg.GetUpdateInterval())
}

func TestIsDev(t *testing.T) {
	assert.True(t, (&Config{Environment: "dev"}).IsDev())
	assert.False(t, (&Config{Environment: "production"}).IsDev())
}
