// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"slices"

	"github.com/rs/zerolog"
)

// maxClipboardWindow caps the exposure window at five minutes of ticks.
const maxClipboardWindow = 300

var supportedKeyAlgorithms = []string{"A256GCM", "C20P"}

// validate checks that the client configuration is usable before any
// component is built from it.
func (cfg *ClientConfig) validate() error {
	if !slices.Contains(supportedKeyAlgorithms, cfg.App.KeyAlgorithm) {
		return fmt.Errorf("%w: unsupported key algorithm %q", ErrInvalidAppConfigs, cfg.App.KeyAlgorithm)
	}
	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
	}

	if cfg.Clipboard.Window < 1 || cfg.Clipboard.Window > maxClipboardWindow || cfg.Clipboard.Tick <= 0 {
		return ErrInvalidClipboardConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	if u, err := url.Parse(cfg.Adapter.HTTPAddress); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: address must be an absolute URL", ErrInvalidAdapterConfigs)
	}

	if cfg.Workers.IdentityCheckInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
