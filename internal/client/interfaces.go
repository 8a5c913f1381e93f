// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-vaultx/internal/identity"
	"github.com/MKhiriev/go-vaultx/internal/service"
	"github.com/MKhiriev/go-vaultx/models"
	tea "github.com/charmbracelet/bubbletea"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run() error
}

// IdentitySource notifies about identity changes. It is implemented by
// *identity.Provider.
type IdentitySource interface {
	OnChange(fn identity.ChangeFunc)
}

// SessionBinder binds the vault session to an identity. It is implemented by
// *service.SessionGuard.
type SessionBinder interface {
	Activate(ctx context.Context, id models.Identity) (*service.Session, error)
}

// UI is the interactive front end. It is implemented by *tui.TUI.
type UI interface {
	Run() error
	Send(msg tea.Msg)
}

// ClipboardRevoker clears a pending clipboard exposure on exit.
type ClipboardRevoker interface {
	Revoke() (bool, error)
}
