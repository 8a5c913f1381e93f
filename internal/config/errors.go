package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid identity service settings
	// (for example, missing address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid client storage settings
	// (for example, empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, an unknown key algorithm).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidClipboardConfigs indicates an unusable exposure window.
	ErrInvalidClipboardConfigs = errors.New("invalid clipboard configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero identity check interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
