// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-vaultx/models"

// Slot name prefixes. Each identity owns exactly one key slot and one items
// slot; CurrentUserSlot is shared by the whole device.
const (
	keySlotPrefix   = "vaultx-encryption-key-"
	itemsSlotPrefix = "vaultx-items-"

	// CurrentUserSlot holds the durable pointer to the logged in user.
	CurrentUserSlot = "vaultx-user"
)

// KeySlot returns the slot holding the vault key token of id.
func KeySlot(id models.Identity) string {
	return keySlotPrefix + string(id)
}

// ItemsSlot returns the slot holding the encrypted vault blob of id.
func ItemsSlot(id models.Identity) string {
	return itemsSlotPrefix + string(id)
}
