// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-vaultx/models"
)

// vaultCodec is the private implementation of [VaultCodec].
type vaultCodec struct {
	// random is the nonce source. Always crypto/rand outside of tests.
	random io.Reader
}

// NewVaultCodec constructs a [VaultCodec] drawing nonces from the OS CSPRNG.
func NewVaultCodec() VaultCodec {
	return &vaultCodec{random: rand.Reader}
}

// itemRecord is the wire shape of one vault item inside the encrypted
// payload. Pointer fields let Decrypt tell a missing field from an empty one.
type itemRecord struct {
	ID       *string `json:"id"`
	Title    *string `json:"title"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	URL      *string `json:"url,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// Encrypt implements [VaultCodec]. It marshals collection to a JSON array
// (an empty collection becomes "[]"), draws a fresh nonce, seals the
// plaintext and returns nonce ‖ ciphertext.
func (c *vaultCodec) Encrypt(collection []models.VaultItem, key *VaultKey) ([]byte, error) {
	// 1. Canonical serialization
	records := make([]itemRecord, 0, len(collection))
	for _, item := range collection {
		records = append(records, itemRecord{
			ID:       &item.ID,
			Title:    &item.Title,
			Username: &item.Username,
			Password: &item.Password,
			URL:      &item.URL,
			Notes:    &item.Notes,
		})
	}
	plaintext, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal vault collection: %w", err)
	}
	defer clear(plaintext)

	// 2. Cipher from the key
	aead, err := key.aead()
	if err != nil {
		return nil, err
	}

	// 3. Fresh nonce per call
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(c.random, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	// 4. nonce || ciphertext
	blob := make([]byte, 0, len(nonce)+len(plaintext)+aead.Overhead())
	blob = append(blob, nonce...)
	return aead.Seal(blob, nonce, plaintext, nil), nil
}

// Decrypt implements [VaultCodec]. It splits the leading nonce, opens and
// authenticates the ciphertext, then validates that the plaintext is a JSON
// array of complete vault items with unique ids. Every failure is returned as
// *DecryptError.
func (c *vaultCodec) Decrypt(blob []byte, key *VaultKey) ([]models.VaultItem, error) {
	aead, err := key.aead()
	if err != nil {
		return nil, &DecryptError{Reason: "key unusable", Err: err}
	}

	nonceSize := aead.NonceSize()
	if len(blob) < nonceSize+aead.Overhead() {
		return nil, &DecryptError{Reason: "ciphertext too short"}
	}
	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, &DecryptError{Reason: "authentication failed", Err: err}
	}
	defer clear(plaintext)

	items, err := decodeCollection(plaintext)
	if err != nil {
		return nil, &DecryptError{Reason: "malformed vault payload", Err: err}
	}
	return items, nil
}

// decodeCollection parses and structurally validates the decrypted payload.
func decodeCollection(plaintext []byte) ([]models.VaultItem, error) {
	trimmed := bytes.TrimSpace(plaintext)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("payload is not a JSON array")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	var records []itemRecord
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after items")
	}

	items := make([]models.VaultItem, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		item, err := r.toItem()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("item %d: duplicate id", i)
		}
		seen[item.ID] = struct{}{}
		items = append(items, item)
	}

	return items, nil
}

func (r itemRecord) toItem() (models.VaultItem, error) {
	required := []struct {
		name  string
		value *string
	}{
		{"id", r.ID},
		{"title", r.Title},
		{"username", r.Username},
		{"password", r.Password},
	}
	for _, f := range required {
		if f.value == nil {
			return models.VaultItem{}, fmt.Errorf("missing field %q", f.name)
		}
		if strings.TrimSpace(*f.value) == "" {
			return models.VaultItem{}, fmt.Errorf("empty field %q", f.name)
		}
	}

	item := models.VaultItem{
		ID:       *r.ID,
		Title:    *r.Title,
		Username: *r.Username,
		Password: *r.Password,
	}
	if r.URL != nil {
		item.URL = *r.URL
	}
	if r.Notes != nil {
		item.Notes = *r.Notes
	}
	return item, nil
}
