package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vaultx/internal/config"
	"github.com/MKhiriev/go-vaultx/internal/logger"
)

// MemoryDSN selects the in-memory slot storage instead of an SQLite file.
const MemoryDSN = ":memory:"

// ClientStorages groups the client-side storage backends into a single value
// that can be passed around the service layer.
type ClientStorages struct {
	// Slots is the durable key-value storage holding vault keys, encrypted
	// vault blobs and the current-user pointer.
	Slots KeyValueStorage

	db *DB
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger:
//  1. An empty DSN or [MemoryDSN] selects the in-memory storage.
//  2. Otherwise an SQLite file is opened (and created if missing) at
//     cfg.DB.DSN and migrated.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	if cfg.DB.DSN == "" || cfg.DB.DSN == MemoryDSN {
		logger.Warn().Msg("using in-memory storage: vault data will not survive a restart")
		return &ClientStorages{Slots: NewMemorySlotStorage()}, nil
	}

	db, err := OpenSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Slots: NewSQLiteSlotStorage(db, logger),
		db:    db,
	}, nil
}

// Close releases the database connection, if any.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
