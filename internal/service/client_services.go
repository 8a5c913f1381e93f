package service

import (
	"github.com/MKhiriev/go-vaultx/internal/crypto"
	"github.com/MKhiriev/go-vaultx/internal/generator"
	"github.com/MKhiriev/go-vaultx/internal/logger"
	"github.com/MKhiriev/go-vaultx/internal/store"
	"github.com/MKhiriev/go-vaultx/internal/utils"
	"github.com/MKhiriev/go-vaultx/internal/validators"
)

// Clipboard is what the services need from the clipboard exposure guard.
type Clipboard interface {
	ClipboardExposer
	ClipboardRevoker
}

type ClientServices struct {
	KeyManager      KeyManager
	VaultLoader     VaultLoader
	SessionGuard    *SessionGuard
	PasswordService PasswordService
}

// NewClientServices wires the vault services on top of slots. New vault keys
// use algorithm.
func NewClientServices(slots store.KeyValueStorage, algorithm crypto.Algorithm, clipboard Clipboard, pointer IdentityPointer, logger *logger.Logger) *ClientServices {
	keys := NewKeyManager(slots, algorithm, logger)
	vaults := NewVaultLoader(slots, crypto.NewVaultCodec(), validators.NewVaultItemValidator(), utils.NewUUIDGenerator(), logger)

	return &ClientServices{
		KeyManager:      keys,
		VaultLoader:     vaults,
		SessionGuard:    NewSessionGuard(keys, vaults, clipboard, pointer, logger),
		PasswordService: NewPasswordService(generator.New(), clipboard),
	}
}
