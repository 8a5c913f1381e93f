package crypto

import "github.com/MKhiriev/go-vaultx/models"

// VaultCodec performs authenticated encryption of the whole vault collection.
//
// Blob layout:
//
//	nonce (12 bytes) ‖ ciphertext ‖ auth tag
//
// Every call to Encrypt draws a fresh random nonce, so encrypting the same
// collection twice never yields the same blob.
type VaultCodec interface {
	// Encrypt serializes collection to its canonical JSON form and seals it
	// with key.
	Encrypt(collection []models.VaultItem, key *VaultKey) ([]byte, error)

	// Decrypt opens blob with key and strictly validates the payload.
	// Any failure is reported as *DecryptError.
	Decrypt(blob []byte, key *VaultKey) ([]models.VaultItem, error)
}
