// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every environment variable of the client, so that
// STORAGE_DB_DSN is read from VAULTX_STORAGE_DB_DSN.
const EnvPrefix = "VAULTX_"

// parseEnv fills cfg from the VAULTX_* environment. Unset variables leave
// their fields untouched.
func parseEnv(cfg any) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}
