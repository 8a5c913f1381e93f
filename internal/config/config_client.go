package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// KeyAlgorithm is the AEAD algorithm of newly generated vault keys.
	KeyAlgorithm string
	// LogLevel is the zerolog level name.
	LogLevel string
}

// ClientClipboard configures the clipboard exposure guard.
type ClientClipboard struct {
	// Window is the number of ticks a copied secret stays exposed.
	Window int
	// Tick is the countdown resolution.
	Tick time.Duration
	// Placeholder is written when the window runs out.
	Placeholder string
	// ManualPlaceholder is written on an explicit clear.
	ManualPlaceholder string
}

// ClientAdapter holds network settings of the identity service client.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the identity service.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path, or ":memory:".
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// IdentityCheckInterval defines how often the identity check job runs.
	IdentityCheckInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Clipboard contains the exposure window settings.
	Clipboard ClientClipboard
	// Adapter contains the identity service address and timeout.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates the client config from the
// command-line args and the other configuration sources.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	if err := clientCfg.validate(); err != nil {
		return nil, err
	}
	return clientCfg, nil
}

// NewClientConfig maps the fields of cfg relevant to the client runtime.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			KeyAlgorithm: cfg.App.KeyAlgorithm,
			LogLevel:     cfg.App.LogLevel,
		},
		Clipboard: ClientClipboard{
			Window:            cfg.Clipboard.Window,
			Tick:              cfg.Clipboard.Tick,
			Placeholder:       cfg.Clipboard.Placeholder,
			ManualPlaceholder: cfg.Clipboard.ManualPlaceholder,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{
			IdentityCheckInterval: cfg.Workers.IdentityCheckInterval,
		},
	}
}
