// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/MKhiriev/go-vaultx/internal/crypto"
	"github.com/MKhiriev/go-vaultx/internal/logger"
	"github.com/MKhiriev/go-vaultx/internal/store"
	"github.com/MKhiriev/go-vaultx/internal/validators"
	"github.com/MKhiriev/go-vaultx/models"
)

type vaultLoader struct {
	slots     store.KeyValueStorage
	codec     crypto.VaultCodec
	validator validators.Validator
	ids       IDGenerator
	logger    *logger.Logger
}

// NewVaultLoader returns a VaultLoader reading blobs from slots.
func NewVaultLoader(slots store.KeyValueStorage, codec crypto.VaultCodec, validator validators.Validator, ids IDGenerator, logger *logger.Logger) VaultLoader {
	return &vaultLoader{slots: slots, codec: codec, validator: validator, ids: ids, logger: logger}
}

func (l *vaultLoader) Load(ctx context.Context, id models.Identity, key *crypto.VaultKey) (VaultItemStore, error) {
	if id.IsNone() {
		return nil, fmt.Errorf("load vault: %w", ErrNoIdentity)
	}

	slot := store.ItemsSlot(id)
	var items []models.VaultItem

	blob, err := l.slots.Get(ctx, slot)
	switch {
	case err == nil:
		items, err = l.codec.Decrypt(blob, key)
		if err != nil {
			var decryptErr *crypto.DecryptError
			if !errors.As(err, &decryptErr) {
				return nil, err
			}

			l.logger.Warn().
				Str("func", "vaultLoader.Load").
				Str("identity", id.String()).
				Str("reason", decryptErr.Reason).
				Msg("stored vault is unusable, erasing it")

			if err = l.slots.Remove(ctx, slot); err != nil {
				return nil, fmt.Errorf("erase unusable vault: %w", err)
			}
			items = nil
		}

	case errors.Is(err, store.ErrSlotNotFound):

	default:
		return nil, fmt.Errorf("load vault: %w", err)
	}

	return &vaultItemStore{
		identity:  id,
		slot:      slot,
		key:       key,
		items:     items,
		slots:     l.slots,
		codec:     l.codec,
		validator: l.validator,
		ids:       l.ids,
		logger:    l.logger,
	}, nil
}

type vaultItemStore struct {
	identity models.Identity
	slot     string

	slots     store.KeyValueStorage
	codec     crypto.VaultCodec
	validator validators.Validator
	ids       IDGenerator
	logger    *logger.Logger

	mu     sync.RWMutex
	key    *crypto.VaultKey
	items  []models.VaultItem
	closed bool
}

func (s *vaultItemStore) Add(ctx context.Context, draft models.VaultItemDraft) (models.VaultItem, error) {
	if err := s.validator.Validate(ctx, draft); err != nil {
		return models.VaultItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return models.VaultItem{}, ErrSessionClosed
	}

	item := draft.ToItem(s.newID())

	next := make([]models.VaultItem, 0, len(s.items)+1)
	next = append(next, s.items...)
	next = append(next, item)

	if err := s.commit(ctx, next); err != nil {
		return models.VaultItem{}, err
	}

	s.logger.Debug().
		Str("func", "vaultItemStore.Add").
		Str("identity", s.identity.String()).
		Str("item_id", item.ID).
		Msg("vault item added")

	return item, nil
}

func (s *vaultItemStore) Update(ctx context.Context, id string, patch models.VaultItemPatch) (models.VaultItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return models.VaultItem{}, ErrSessionClosed
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return models.VaultItem{}, &NotFoundError{ID: id}
	}

	merged := patch.Apply(s.items[idx])
	if err := s.validator.Validate(ctx, merged); err != nil {
		return models.VaultItem{}, err
	}

	next := slices.Clone(s.items)
	next[idx] = merged

	if err := s.commit(ctx, next); err != nil {
		return models.VaultItem{}, err
	}

	s.logger.Debug().
		Str("func", "vaultItemStore.Update").
		Str("identity", s.identity.String()).
		Str("item_id", id).
		Msg("vault item updated")

	return merged, nil
}

func (s *vaultItemStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	next := slices.Delete(slices.Clone(s.items), idx, idx+1)
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.logger.Debug().
		Str("func", "vaultItemStore.Remove").
		Str("identity", s.identity.String()).
		Str("item_id", id).
		Msg("vault item removed")

	return nil
}

// Search matches query as a case-insensitive substring of the title,
// username or URL. Whitespace is part of the query; only "" matches all.
func (s *vaultItemStore) Search(query string) []models.VaultItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)
	result := make([]models.VaultItem, 0, len(s.items))
	for _, item := range s.items {
		if query == "" ||
			strings.Contains(strings.ToLower(item.Title), query) ||
			strings.Contains(strings.ToLower(item.Username), query) ||
			strings.Contains(strings.ToLower(item.URL), query) {
			result = append(result, item)
		}
	}
	return result
}

func (s *vaultItemStore) Items() []models.VaultItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append(make([]models.VaultItem, 0, len(s.items)), s.items...)
}

func (s *vaultItemStore) Get(id string) (models.VaultItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return models.VaultItem{}, ErrSessionClosed
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return models.VaultItem{}, &NotFoundError{ID: id}
	}
	return s.items[idx], nil
}

func (s *vaultItemStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	clear(s.items)
	s.items = nil
	s.key = nil
}

// commit encrypts and persists next, then makes it the current collection.
// On failure the current collection is left as it was.
func (s *vaultItemStore) commit(ctx context.Context, next []models.VaultItem) error {
	blob, err := s.codec.Encrypt(next, s.key)
	if err != nil {
		return fmt.Errorf("encrypt vault: %w", err)
	}

	if err = s.slots.Set(ctx, s.slot, blob); err != nil {
		s.logger.Err(err).
			Str("func", "vaultItemStore.commit").
			Str("identity", s.identity.String()).
			Msg("failed to persist vault")
		return fmt.Errorf("persist vault: %w", err)
	}

	s.items = next
	return nil
}

func (s *vaultItemStore) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(item models.VaultItem) bool {
		return item.ID == id
	})
}

// newID returns an ID not used by any item yet.
func (s *vaultItemStore) newID() string {
	for {
		id := s.ids.Generate()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}
