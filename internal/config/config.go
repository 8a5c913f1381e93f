// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the vaultx
// client. It aggregates all sub-configurations and is populated by merging
// values from command-line flags, environment variables, an optional JSON
// file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix of the nested section, after the global [EnvPrefix].
//   - env: variable name of a scalar field.
type StructuredConfig struct {
	// App holds application-level settings.
	App App `envPrefix:"APP_"`

	// Clipboard holds the exposure window of copied secrets.
	Clipboard Clipboard `envPrefix:"CLIPBOARD_"`

	// Storage holds the device-local storage settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the address of the remote identity service.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the VAULTX_CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// KeyAlgorithm is the AEAD algorithm of newly generated vault keys:
	// "A256GCM" (default) or "C20P". Existing keys keep their own algorithm.
	// Env: APP_KEY_ALGORITHM
	KeyAlgorithm string `env:"KEY_ALGORITHM"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Clipboard configures the clipboard exposure guard.
type Clipboard struct {
	// Window is the number of ticks a copied secret stays in the clipboard.
	// Env: CLIPBOARD_WINDOW
	Window int `env:"WINDOW"`

	// Tick is the countdown resolution.
	// Env: CLIPBOARD_TICK
	Tick time.Duration `env:"TICK"`

	// Placeholder replaces the secret when the window runs out.
	// Env: CLIPBOARD_PLACEHOLDER
	Placeholder string `env:"PLACEHOLDER"`

	// ManualPlaceholder replaces the secret on an explicit clear.
	// Env: CLIPBOARD_MANUAL_PLACEHOLDER
	ManualPlaceholder string `env:"MANUAL_PLACEHOLDER"`
}

// Storage groups the configuration of the local storage backend.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the path of the SQLite file, or ":memory:" for a storage that
	// does not survive restarts.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Adapter holds configuration of the remote identity service client.
type Adapter struct {
	// HTTPAddress is the base URL of the identity service
	// (e.g. "http://localhost:3000").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single request to the identity service.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background jobs.
type Workers struct {
	// IdentityCheckInterval is how often the logged in identity is
	// re-validated against the identity service.
	// Env: WORKERS_IDENTITY_CHECK_INTERVAL
	IdentityCheckInterval time.Duration `env:"IDENTITY_CHECK_INTERVAL"`
}

// Defaults returns the built-in configuration used for every field no other
// source sets.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			KeyAlgorithm: "A256GCM",
			LogLevel:     "info",
		},
		Clipboard: Clipboard{
			Window:            30,
			Tick:              time.Second,
			Placeholder:       "🔒 VaultX cleared",
			ManualPlaceholder: "🔒 VaultX manually cleared",
		},
		Storage: Storage{
			DB: DB{DSN: "vaultx.db"},
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:3000",
			RequestTimeout: 10 * time.Second,
		},
		Workers: Workers{
			IdentityCheckInterval: time.Minute,
		},
	}
}

// GetStructuredConfig loads and merges the configuration from all available
// sources. For every field the first source that sets it wins:
//  1. Command-line flags (args)
//  2. Environment variables
//  3. JSON file (path resolved from sources 1 and 2)
//  4. [Defaults]
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(args).
		withEnv().
		withJSON().
		withDefaults().
		build()
}
