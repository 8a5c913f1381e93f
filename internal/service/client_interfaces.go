// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the session-scoped vault logic of the client: the
// per-identity key manager, the vault item store and the session guard that
// binds both to the identity currently logged in.
package service

import (
	"context"

	"github.com/MKhiriev/go-vaultx/internal/crypto"
	"github.com/MKhiriev/go-vaultx/models"
)

// KeyManager resolves the vault key of an identity.
type KeyManager interface {
	// ResolveKey returns the persisted key of id. If none is stored, or the
	// stored token can't be imported, a fresh key is generated and persisted.
	// regenerated is true only in the second case: the previous key is lost
	// and so is every blob encrypted with it.
	//
	// A storage failure other than an absent slot is returned as is and no
	// key is generated.
	ResolveKey(ctx context.Context, id models.Identity) (key *crypto.VaultKey, regenerated bool, err error)
}

// VaultItemStore is the decrypted vault of one identity. Every mutation is
// encrypted and persisted before it becomes visible; a failed persist leaves
// the store unchanged.
type VaultItemStore interface {
	// Add validates draft, assigns a new ID and appends the item.
	// Returns *validators.ValidationError for an incomplete draft.
	Add(ctx context.Context, draft models.VaultItemDraft) (models.VaultItem, error)

	// Update applies patch to the item with the given id. The ID never
	// changes. Returns *NotFoundError if there is no such item and
	// *validators.ValidationError if the result is incomplete.
	Update(ctx context.Context, id string, patch models.VaultItemPatch) (models.VaultItem, error)

	// Remove deletes the item with the given id. Removing an absent item is
	// a no-op and writes nothing.
	Remove(ctx context.Context, id string) error

	// Search returns the items whose title, username or URL contain query,
	// ignoring case, in collection order. An empty query matches everything.
	Search(query string) []models.VaultItem

	// Items returns a copy of the whole collection.
	Items() []models.VaultItem

	// Get returns a copy of the item with the given id.
	Get(id string) (models.VaultItem, error)

	// Close wipes the collection from memory. Mutations after Close fail
	// with ErrSessionClosed, reads return nothing.
	Close()
}

// VaultLoader builds the VaultItemStore of an identity from its persisted
// blob.
type VaultLoader interface {
	// Load reads and decrypts the blob of id. An absent blob yields an empty
	// store. A blob that fails to decrypt is erased and also yields an empty
	// store. Storage failures are returned.
	Load(ctx context.Context, id models.Identity, key *crypto.VaultKey) (VaultItemStore, error)
}

// PasswordService produces password candidates.
type PasswordService interface {
	Generate(policy models.PasswordPolicy) (string, error)

	// GenerateAndExpose generates a candidate and copies it to the clipboard
	// through the exposure guard.
	GenerateAndExpose(policy models.PasswordPolicy) (string, error)
}

// IDGenerator returns a new unique item ID.
type IDGenerator interface {
	Generate() string
}

// IdentityPointer is the durable record of the logged in user.
type IdentityPointer interface {
	ForgetCurrent(ctx context.Context) error
}

// ClipboardRevoker takes an exposed secret back out of the clipboard.
type ClipboardRevoker interface {
	Revoke() (bool, error)
}

// ClipboardExposer puts a secret into the clipboard for a bounded time.
type ClipboardExposer interface {
	Expose(secret string) error
}

// PasswordGenerator draws a password from a policy.
type PasswordGenerator interface {
	Generate(policy models.PasswordPolicy) (string, error)
}
