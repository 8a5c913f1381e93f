package crypto

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestGenerateKey_LengthAndRandomness(t *testing.T) {
	k1, err := GenerateKey(AES256GCM)
	if err != nil {
		t.Fatalf("GenerateKey error: %v", err)
	}
	k2, err := GenerateKey(AES256GCM)
	if err != nil {
		t.Fatalf("GenerateKey error: %v", err)
	}

	if len(k1.raw) != KeySize {
		t.Fatalf("key length = %d, want %d", len(k1.raw), KeySize)
	}
	if bytes.Equal(k1.raw, k2.raw) {
		t.Fatalf("expected keys to differ, but they are equal")
	}
	if k1.Algorithm() != AES256GCM {
		t.Fatalf("algorithm = %q, want %q", k1.Algorithm(), AES256GCM)
	}
}

func TestGenerateKey_UnknownAlgorithm(t *testing.T) {
	if _, err := GenerateKey(Algorithm("ROT13")); err == nil {
		t.Fatalf("expected error for unknown algorithm")
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	for _, alg := range []Algorithm{AES256GCM, ChaCha20Poly1305} {
		t.Run(string(alg), func(t *testing.T) {
			key, err := GenerateKey(alg)
			if err != nil {
				t.Fatalf("GenerateKey error: %v", err)
			}

			token, err := ExportToken(key)
			if err != nil {
				t.Fatalf("ExportToken error: %v", err)
			}
			if !strings.Contains(token, `"kty":"oct"`) {
				t.Fatalf("token is not a symmetric JWK: %s", token)
			}

			imported, err := ImportToken(token)
			if err != nil {
				t.Fatalf("ImportToken error: %v", err)
			}
			if imported.Algorithm() != alg {
				t.Fatalf("algorithm = %q, want %q", imported.Algorithm(), alg)
			}
			if !bytes.Equal(imported.raw, key.raw) {
				t.Fatalf("imported key material differs from the exported one")
			}
		})
	}
}

func TestImportToken_Malformed(t *testing.T) {
	validK := base64.RawURLEncoding.EncodeToString(bytes.Repeat([]byte{0x2A}, KeySize))
	shortK := base64.RawURLEncoding.EncodeToString(bytes.Repeat([]byte{0x2A}, 16))

	cases := map[string]string{
		"empty":          "",
		"not json":       "definitely not a key",
		"json array":     `["oct"]`,
		"wrong kty":      `{"kty":"RSA","alg":"A256GCM","k":"` + validK + `","key_ops":["encrypt","decrypt"]}`,
		"unknown alg":    `{"kty":"oct","alg":"A128CBC","k":"` + validK + `","key_ops":["encrypt","decrypt"]}`,
		"missing ops":    `{"kty":"oct","alg":"A256GCM","k":"` + validK + `","key_ops":["encrypt"]}`,
		"bad base64":     `{"kty":"oct","alg":"A256GCM","k":"***","key_ops":["encrypt","decrypt"]}`,
		"short key":      `{"kty":"oct","alg":"A256GCM","k":"` + shortK + `","key_ops":["encrypt","decrypt"]}`,
		"missing k":      `{"kty":"oct","alg":"A256GCM","key_ops":["encrypt","decrypt"]}`,
		"truncated json": `{"kty":"oct","alg":"A256GCM","k":"` + validK,
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ImportToken(token)
			var kfe *KeyFormatError
			if !errors.As(err, &kfe) {
				t.Fatalf("expected *KeyFormatError, got %v", err)
			}
		})
	}
}

func TestVaultKey_Wipe(t *testing.T) {
	key, err := GenerateKey(AES256GCM)
	if err != nil {
		t.Fatalf("GenerateKey error: %v", err)
	}
	raw := key.raw

	key.Wipe()

	for i, b := range raw {
		if b != 0 {
			t.Fatalf("expected zeroed byte at index %d, got %d", i, b)
		}
	}
	if _, err := ExportToken(key); err == nil {
		t.Fatalf("expected export of a wiped key to fail")
	}
	if _, err := NewVaultCodec().Encrypt(nil, key); err == nil {
		t.Fatalf("expected encryption with a wiped key to fail")
	}
}

func TestParseAlgorithm(t *testing.T) {
	if a, err := ParseAlgorithm("C20P"); err != nil || a != ChaCha20Poly1305 {
		t.Fatalf("ParseAlgorithm(C20P) = %q, %v", a, err)
	}
	if _, err := ParseAlgorithm("aes"); err == nil {
		t.Fatalf("expected error for unknown algorithm name")
	}
}
