// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/MKhiriev/go-vaultx/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCollection() []models.VaultItem {
	return []models.VaultItem{
		{ID: "1", Title: "GitHub", Username: "alice", Password: "s3cr3t", URL: "https://github.com", Notes: "work"},
		{ID: "2", Title: "Mail", Username: "alice@example.com", Password: "hunter2"},
		{ID: "3", Title: "Bank", Username: "0042", Password: " spaced pass ", Notes: "пин на обороте"},
	}
}

func newTestKey(t *testing.T, alg Algorithm) *VaultKey {
	t.Helper()
	key, err := GenerateKey(alg)
	require.NoError(t, err)
	return key
}

// sealRaw encrypts an arbitrary plaintext with key the same way the codec
// does, so tests can craft authenticated but malformed payloads.
func sealRaw(t *testing.T, key *VaultKey, plaintext []byte) []byte {
	t.Helper()
	aead, err := key.aead()
	require.NoError(t, err)
	nonce := make([]byte, aead.NonceSize())
	_, err = io.ReadFull(rand.Reader, nonce)
	require.NoError(t, err)
	return aead.Seal(append([]byte(nil), nonce...), nonce, plaintext, nil)
}

// ── Encrypt / Decrypt ────────────────────────────────────────────────────────

func TestVaultCodec_RoundTrip(t *testing.T) {
	codec := NewVaultCodec()

	for _, alg := range []Algorithm{AES256GCM, ChaCha20Poly1305} {
		t.Run(string(alg), func(t *testing.T) {
			key := newTestKey(t, alg)
			want := sampleCollection()

			blob, err := codec.Encrypt(want, key)
			require.NoError(t, err)

			got, err := codec.Decrypt(blob, key)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestVaultCodec_RoundTrip_EmptyCollection(t *testing.T) {
	codec := NewVaultCodec()
	key := newTestKey(t, AES256GCM)

	for _, in := range [][]models.VaultItem{nil, {}} {
		blob, err := codec.Encrypt(in, key)
		require.NoError(t, err)

		got, err := codec.Decrypt(blob, key)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestVaultCodec_BlobLayout(t *testing.T) {
	codec := NewVaultCodec()
	key := newTestKey(t, AES256GCM)

	blob, err := codec.Encrypt(sampleCollection(), key)
	require.NoError(t, err)

	// Reconstruct AES-GCM by hand and open nonce || ciphertext.
	block, err := aes.NewCipher(key.raw)
	require.NoError(t, err)
	gcm, err := cipher.NewGCM(block)
	require.NoError(t, err)
	require.Equal(t, NonceSize, gcm.NonceSize())

	plain, err := gcm.Open(nil, blob[:NonceSize], blob[NonceSize:], nil)
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(plain, &raw))
	assert.Len(t, raw, 3)
	assert.Equal(t, "GitHub", raw[0]["title"])
}

func TestVaultCodec_NonceUniqueness(t *testing.T) {
	codec := NewVaultCodec()
	key := newTestKey(t, AES256GCM)
	collection := sampleCollection()

	const n = 1000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		blob, err := codec.Encrypt(collection, key)
		require.NoError(t, err)

		nonce := string(blob[:NonceSize])
		_, dup := seen[nonce]
		require.False(t, dup, "nonce reused after %d encryptions", i)
		seen[nonce] = struct{}{}
	}
}

func TestVaultCodec_TamperDetection(t *testing.T) {
	codec := NewVaultCodec()
	key := newTestKey(t, AES256GCM)

	blob, err := codec.Encrypt([]models.VaultItem{{ID: "1", Title: "t", Username: "u", Password: "p"}}, key)
	require.NoError(t, err)

	for i := 0; i < len(blob)*8; i++ {
		tampered := bytes.Clone(blob)
		tampered[i/8] ^= 1 << (i % 8)

		got, err := codec.Decrypt(tampered, key)
		var de *DecryptError
		require.ErrorAs(t, err, &de, "bit %d flip was accepted", i)
		require.Nil(t, got)
	}
}

func TestVaultCodec_Decrypt_WrongKey(t *testing.T) {
	codec := NewVaultCodec()

	blob, err := codec.Encrypt(sampleCollection(), newTestKey(t, AES256GCM))
	require.NoError(t, err)

	_, err = codec.Decrypt(blob, newTestKey(t, AES256GCM))
	var de *DecryptError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "authentication failed", de.Reason)
}

func TestVaultCodec_Decrypt_Truncated(t *testing.T) {
	codec := NewVaultCodec()
	key := newTestKey(t, AES256GCM)

	blob, err := codec.Encrypt(sampleCollection(), key)
	require.NoError(t, err)

	for _, n := range []int{0, 5, NonceSize, NonceSize + 15, len(blob) - 1} {
		_, err := codec.Decrypt(blob[:n], key)
		var de *DecryptError
		assert.ErrorAs(t, err, &de, "length %d", n)
	}
}

func TestVaultCodec_Decrypt_MalformedPayload(t *testing.T) {
	codec := NewVaultCodec()
	key := newTestKey(t, AES256GCM)

	cases := map[string]string{
		"object instead of array": `{"id":"1","title":"t","username":"u","password":"p"}`,
		"null":                    `null`,
		"string":                  `"[]"`,
		"not json":                `vault`,
		"element is not object":   `["x"]`,
		"missing id":              `[{"title":"t","username":"u","password":"p"}]`,
		"missing password":        `[{"id":"1","title":"t","username":"u"}]`,
		"null title":              `[{"id":"1","title":null,"username":"u","password":"p"}]`,
		"empty username":          `[{"id":"1","title":"t","username":"  ","password":"p"}]`,
		"numeric title":           `[{"id":"1","title":5,"username":"u","password":"p"}]`,
		"numeric url":             `[{"id":"1","title":"t","username":"u","password":"p","url":1}]`,
		"unknown field":           `[{"id":"1","title":"t","username":"u","password":"p","admin":true}]`,
		"duplicate id":            `[{"id":"1","title":"t","username":"u","password":"p"},{"id":"1","title":"x","username":"y","password":"z"}]`,
		"trailing data":           `[] []`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := codec.Decrypt(sealRaw(t, key, []byte(payload)), key)

			var de *DecryptError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, "malformed vault payload", de.Reason)
			assert.Nil(t, got)
		})
	}
}

func TestVaultCodec_Decrypt_OptionalFieldsMayBeAbsent(t *testing.T) {
	codec := NewVaultCodec()
	key := newTestKey(t, AES256GCM)

	payload := `[{"id":"1","title":"t","username":"u","password":"p"}]`
	got, err := codec.Decrypt(sealRaw(t, key, []byte(payload)), key)

	require.NoError(t, err)
	assert.Equal(t, []models.VaultItem{{ID: "1", Title: "t", Username: "u", Password: "p"}}, got)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestVaultCodec_Encrypt_NonceSourceFailure(t *testing.T) {
	codec := &vaultCodec{random: failingReader{}}
	key := newTestKey(t, AES256GCM)

	_, err := codec.Encrypt(sampleCollection(), key)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate nonce")
}
