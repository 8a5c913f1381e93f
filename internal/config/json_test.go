package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	p := writeTempJSONConfig(t, `{
		"app": {"key_algorithm": "C20P", "log_level": "debug"},
		"clipboard": {
			"window": 45,
			"tick": "1s",
			"placeholder": "cleared",
			"manual_placeholder": "manually cleared"
		},
		"storage": {"db": {"dsn": "/var/lib/vaultx/vault.db"}},
		"adapter": {"http_address": "https://vaultx.example.com", "request_timeout": "5s"},
		"workers": {"identity_check_interval": "30s"}
	}`)

	cfg, err := parseJSON(p)
	require.NoError(t, err)

	assert.Equal(t, "C20P", cfg.App.KeyAlgorithm)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, 45, cfg.Clipboard.Window)
	assert.Equal(t, time.Second, cfg.Clipboard.Tick)
	assert.Equal(t, "cleared", cfg.Clipboard.Placeholder)
	assert.Equal(t, "manually cleared", cfg.Clipboard.ManualPlaceholder)
	assert.Equal(t, "/var/lib/vaultx/vault.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "https://vaultx.example.com", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.Workers.IdentityCheckInterval)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	_, err := parseJSON(writeTempJSONConfig(t, `{"app":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_BadDuration(t *testing.T) {
	_, err := parseJSON(writeTempJSONConfig(t, `{"clipboard":{"tick":"soon"}}`))
	assert.Error(t, err)
}

func TestDuration_JSON(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalJSON([]byte(`"90s"`)))
	assert.Equal(t, Duration(90*time.Second), d)

	require.NoError(t, d.UnmarshalJSON([]byte(`1000`)))
	assert.Equal(t, Duration(time.Microsecond), d)

	b, err := Duration(time.Minute).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1m0s"`, string(b))
}
