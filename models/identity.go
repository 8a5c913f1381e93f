// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Identity is the stable handle of the authenticated user. It is used only
// to namespace durable storage slots and is never written into the vault.
// The zero value means "no identity".
type Identity string

// IsNone reports whether the identity is absent.
func (i Identity) IsNone() bool {
	return i == ""
}

// String implements [fmt.Stringer].
func (i Identity) String() string {
	return string(i)
}

// User represents an account of the remote identity service as seen by the
// client.
type User struct {
	// Name is the display name of the user. It doubles as the vault Identity.
	Name string `json:"name"`

	// Email is the login of the user.
	Email string `json:"email"`

	// Phone is only sent on sign-up.
	Phone string `json:"phone,omitempty"`

	// Password is the plaintext account password. It is only sent to the
	// identity service and never persisted on the client.
	Password string `json:"password,omitempty"`
}

// Identity returns the vault identity of the user.
func (u User) Identity() Identity {
	return Identity(u.Name)
}

// CurrentUser is the durable pointer to the user that is currently logged in.
// It is persisted between runs so that the session can be restored.
type CurrentUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	// Token is the bearer token issued by the identity service.
	Token string `json:"token"`
}

// Identity returns the vault identity of the logged in user.
func (c CurrentUser) Identity() Identity {
	return Identity(c.Name)
}
