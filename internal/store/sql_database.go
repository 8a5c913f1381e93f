package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-vaultx/internal/config"
	"github.com/MKhiriev/go-vaultx/internal/logger"
	"github.com/MKhiriev/go-vaultx/migrations"
)

// sqliteParams are appended to the file DSN: writers wait on a locked file
// instead of failing, and the journal survives a crash mid-write.
const sqliteParams = "_busy_timeout=5000&_journal_mode=WAL&_synchronous=FULL"

// DB wraps the SQLite connection of the client device.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// OpenSQLite opens the vault database file at cfg.DSN. A missing file is
// created readable by the owner only.
func OpenSQLite(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (*DB, error) {
	if err := ensureVaultFile(cfg.DSN); err != nil {
		log.Err(err).Str("func", "OpenSQLite").Str("dsn", cfg.DSN).Msg("failed to prepare database file")
		return nil, err
	}

	conn, err := sql.Open("sqlite3", "file:"+cfg.DSN+"?"+sqliteParams)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", cfg.DSN, err)
	}
	// one connection orders slot writes
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		log.Err(err).Str("func", "OpenSQLite").Str("dsn", cfg.DSN).Msg("database is not reachable")
		return nil, fmt.Errorf("ping sqlite %q: %w", cfg.DSN, err)
	}

	log.Debug().Str("func", "OpenSQLite").Str("dsn", cfg.DSN).Msg("database opened")
	return &DB{DB: conn, logger: log}, nil
}

// Migrate brings the slot schema up to date.
func (db *DB) Migrate(ctx context.Context) error {
	applied, err := migrations.Migrate(ctx, db.DB)
	if err != nil {
		return err
	}
	if applied > 0 {
		db.logger.Info().Str("func", "DB.Migrate").Int("applied", applied).Msg("database schema migrated")
	}
	return nil
}

func ensureVaultFile(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %q: %w", path, err)
	}

	if err = os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create database dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil && !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("create database file: %w", err)
	}
	if f != nil {
		f.Close()
	}
	return nil
}
