package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-vaultx/internal/config"
	"github.com/MKhiriev/go-vaultx/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureVaultFile_CreatesOwnerOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "vault.db")

	require.NoError(t, ensureVaultFile(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestEnsureVaultFile_KeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.db")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))

	require.NoError(t, ensureVaultFile(path))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(body))
}

func TestNewClientStorages_Memory(t *testing.T) {
	for _, dsn := range []string{"", MemoryDSN} {
		storages, err := NewClientStorages(context.Background(), config.ClientStorage{DB: config.ClientDB{DSN: dsn}}, logger.Nop())
		require.NoError(t, err)

		_, ok := storages.Slots.(*memorySlotStorage)
		assert.True(t, ok, "dsn %q", dsn)
		assert.NoError(t, storages.Close())
	}
}
