// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	envVars := map[string]string{
		"VAULTX_CONFIG": "/path/to/config.json",

		"VAULTX_APP_KEY_ALGORITHM": "C20P",
		"VAULTX_APP_LOG_LEVEL":     "warn",

		"VAULTX_CLIPBOARD_WINDOW":             "20",
		"VAULTX_CLIPBOARD_TICK":               "1s",
		"VAULTX_CLIPBOARD_PLACEHOLDER":        "gone",
		"VAULTX_CLIPBOARD_MANUAL_PLACEHOLDER": "gone now",

		"VAULTX_STORAGE_DB_DSN": "/data/vault.db",

		"VAULTX_ADAPTER_ADDRESS":         "http://127.0.0.1:3000",
		"VAULTX_ADAPTER_REQUEST_TIMEOUT": "15s",

		"VAULTX_WORKERS_IDENTITY_CHECK_INTERVAL": "5m",
	}
	for k, v := range envVars {
		t.Setenv(k, v)
	}

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "C20P", cfg.App.KeyAlgorithm)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, 20, cfg.Clipboard.Window)
	assert.Equal(t, time.Second, cfg.Clipboard.Tick)
	assert.Equal(t, "gone", cfg.Clipboard.Placeholder)
	assert.Equal(t, "gone now", cfg.Clipboard.ManualPlaceholder)
	assert.Equal(t, "/data/vault.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "http://127.0.0.1:3000", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Workers.IdentityCheckInterval)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("VAULTX_CLIPBOARD_TICK", "later")

	err := parseEnv(&StructuredConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}

func TestParseEnv_IgnoresUnprefixed(t *testing.T) {
	t.Setenv("STORAGE_DB_DSN", "/tmp/other.db")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Empty(t, cfg.Storage.DB.DSN)
}
