package store

import (
	"context"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// KeyValueStorage is the durable, device-local slot storage of the vault.
// Slots are namespaced per identity (see [KeySlot], [ItemsSlot]); the
// storage itself knows nothing about identities or encryption.
type KeyValueStorage interface {
	// Get returns the value of slot, or [ErrSlotNotFound] if the slot is empty.
	// Any other failure is a *PersistenceError.
	Get(ctx context.Context, slot string) ([]byte, error)

	// Set stores value in slot, replacing a previous value.
	Set(ctx context.Context, slot string, value []byte) error

	// Remove erases slot. Removing an empty slot is not an error.
	Remove(ctx context.Context, slot string) error
}
