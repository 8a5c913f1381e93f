// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client of the remote VaultX identity service.
//
// The identity service owns account registration, password hashing and token
// issuing. The client only needs three calls from it: sign-up, login (which
// yields a bearer token) and "who am I" for an existing token.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrUnauthorized]
// for 401, [ErrForbidden] for an invalid or expired token).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-vaultx/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/identity_adapter_mock.go -package=mock

// IdentityAdapter talks to the remote identity service.
type IdentityAdapter interface {
	// Signup registers a new account (POST /api/signup). Name, Email and
	// Password are required, Phone is optional. It does not log the user in.
	Signup(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates with Email and Password (POST /api/login) and
	// returns the logged in user together with the issued token.
	Login(ctx context.Context, user models.User) (models.CurrentUser, error)

	// Me returns the account the token belongs to (GET /api/me).
	// A rejected token yields [ErrUnauthorized] or [ErrForbidden].
	Me(ctx context.Context, token string) (models.User, error)
}
