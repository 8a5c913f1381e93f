// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"golang.org/x/crypto/chacha20poly1305"
)

// Algorithm names the AEAD construction a [VaultKey] is used with.
// Values follow the JWK "alg" naming so exported tokens stay self-describing.
type Algorithm string

const (
	// AES256GCM is AES-256 in Galois/Counter Mode. Default for new keys.
	AES256GCM Algorithm = "A256GCM"

	// ChaCha20Poly1305 is the IETF ChaCha20-Poly1305 construction. It has the
	// same 12-byte nonce and 16-byte tag as AES-GCM and is faster on hardware
	// without AES instructions.
	ChaCha20Poly1305 Algorithm = "C20P"
)

const (
	// KeySize is the length of every vault key in bytes (256 bits).
	KeySize = 32

	// NonceSize is the length of the per-encryption nonce prepended to every blob.
	NonceSize = 12
)

// ParseAlgorithm validates an algorithm name.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(s); a {
	case AES256GCM, ChaCha20Poly1305:
		return a, nil
	default:
		return "", fmt.Errorf("unsupported vault key algorithm %q", s)
	}
}

// VaultKey is a symmetric AEAD key. It is opaque to callers beyond
// [ExportToken] / [ImportToken].
type VaultKey struct {
	alg Algorithm
	raw []byte
}

// GenerateKey creates a fresh random key for alg using the OS CSPRNG.
func GenerateKey(alg Algorithm) (*VaultKey, error) {
	if _, err := ParseAlgorithm(string(alg)); err != nil {
		return nil, err
	}

	raw := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return nil, fmt.Errorf("generate vault key: %w", err)
	}
	return &VaultKey{alg: alg, raw: raw}, nil
}

// Algorithm returns the AEAD construction of the key.
func (k *VaultKey) Algorithm() Algorithm {
	return k.alg
}

// Wipe overwrites the key material with zeros. A wiped key can't be used
// for encryption any more.
func (k *VaultKey) Wipe() {
	if k == nil {
		return
	}
	clear(k.raw)
	k.raw = nil
}

// aead builds the cipher for the key.
func (k *VaultKey) aead() (cipher.AEAD, error) {
	if k == nil || len(k.raw) != KeySize {
		return nil, fmt.Errorf("vault key is not usable")
	}

	switch k.alg {
	case AES256GCM:
		block, err := aes.NewCipher(k.raw)
		if err != nil {
			return nil, fmt.Errorf("create cipher: %w", err)
		}
		gcm, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("create gcm: %w", err)
		}
		return gcm, nil
	case ChaCha20Poly1305:
		aead, err := chacha20poly1305.New(k.raw)
		if err != nil {
			return nil, fmt.Errorf("create chacha20poly1305: %w", err)
		}
		return aead, nil
	default:
		return nil, fmt.Errorf("unsupported vault key algorithm %q", k.alg)
	}
}

// keyToken is the serialized form of a [VaultKey]: a symmetric JWK.
type keyToken struct {
	Kty    string   `json:"kty"`
	Alg    string   `json:"alg"`
	K      string   `json:"k"`
	Ext    bool     `json:"ext"`
	KeyOps []string `json:"key_ops"`
}

// ExportToken serializes key into a JWK-shaped JSON token that can be kept in
// durable storage.
func ExportToken(key *VaultKey) (string, error) {
	if key == nil || len(key.raw) != KeySize {
		return "", fmt.Errorf("export vault key: key is not usable")
	}

	token, err := json.Marshal(keyToken{
		Kty:    "oct",
		Alg:    string(key.alg),
		K:      base64.RawURLEncoding.EncodeToString(key.raw),
		Ext:    true,
		KeyOps: []string{"encrypt", "decrypt"},
	})
	if err != nil {
		return "", fmt.Errorf("marshal vault key: %w", err)
	}
	return string(token), nil
}

// ImportToken parses a token produced by [ExportToken]. Every malformed input
// yields a *KeyFormatError.
func ImportToken(token string) (*VaultKey, error) {
	var t keyToken
	if err := json.Unmarshal([]byte(token), &t); err != nil {
		return nil, &KeyFormatError{Reason: "not a JSON key token", Err: err}
	}

	if t.Kty != "oct" {
		return nil, &KeyFormatError{Reason: fmt.Sprintf("unexpected key type %q", t.Kty)}
	}

	alg, err := ParseAlgorithm(t.Alg)
	if err != nil {
		return nil, &KeyFormatError{Reason: "unknown algorithm", Err: err}
	}

	for _, op := range []string{"encrypt", "decrypt"} {
		if !slices.Contains(t.KeyOps, op) {
			return nil, &KeyFormatError{Reason: fmt.Sprintf("key does not permit %q", op)}
		}
	}

	raw, err := base64.RawURLEncoding.DecodeString(t.K)
	if err != nil {
		return nil, &KeyFormatError{Reason: "key material is not base64url", Err: err}
	}
	if len(raw) != KeySize {
		clear(raw)
		return nil, &KeyFormatError{Reason: fmt.Sprintf("key length %d, want %d", len(raw), KeySize)}
	}

	return &VaultKey{alg: alg, raw: raw}, nil
}
