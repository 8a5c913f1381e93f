package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vaultx/internal/crypto"
	"github.com/MKhiriev/go-vaultx/internal/logger"
	"github.com/MKhiriev/go-vaultx/internal/store"
	"github.com/MKhiriev/go-vaultx/models"
)

type keyManager struct {
	slots     store.KeyValueStorage
	algorithm crypto.Algorithm
	logger    *logger.Logger
}

// NewKeyManager returns a KeyManager storing key tokens in slots. New keys
// use algorithm.
func NewKeyManager(slots store.KeyValueStorage, algorithm crypto.Algorithm, logger *logger.Logger) KeyManager {
	return &keyManager{slots: slots, algorithm: algorithm, logger: logger}
}

func (k *keyManager) ResolveKey(ctx context.Context, id models.Identity) (*crypto.VaultKey, bool, error) {
	if id.IsNone() {
		return nil, false, fmt.Errorf("resolve vault key: %w", ErrNoIdentity)
	}

	slot := store.KeySlot(id)
	regenerated := false

	raw, err := k.slots.Get(ctx, slot)
	switch {
	case err == nil:
		key, importErr := crypto.ImportToken(string(raw))
		if importErr == nil {
			return key, false, nil
		}

		var formatErr *crypto.KeyFormatError
		if !errors.As(importErr, &formatErr) {
			return nil, false, importErr
		}

		k.logger.Warn().
			Str("func", "keyManager.ResolveKey").
			Str("identity", id.String()).
			Str("reason", formatErr.Reason).
			Msg("stored vault key is unreadable, generating a new one; existing vault data can't be recovered")
		regenerated = true

	case errors.Is(err, store.ErrSlotNotFound):
		// first use of this identity

	default:
		return nil, false, fmt.Errorf("resolve vault key: %w", err)
	}

	key, err := crypto.GenerateKey(k.algorithm)
	if err != nil {
		return nil, false, err
	}

	token, err := crypto.ExportToken(key)
	if err != nil {
		key.Wipe()
		return nil, false, err
	}

	if err = k.slots.Set(ctx, slot, []byte(token)); err != nil {
		key.Wipe()
		return nil, false, fmt.Errorf("persist vault key: %w", err)
	}

	k.logger.Debug().
		Str("func", "keyManager.ResolveKey").
		Str("identity", id.String()).
		Str("algorithm", string(k.algorithm)).
		Msg("created vault key")

	return key, regenerated, nil
}
