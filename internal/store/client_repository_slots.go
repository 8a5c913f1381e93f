// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vaultx/internal/logger"
)

// sqliteSlotStorage keeps slots in the kv_slots table.
type sqliteSlotStorage struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSQLiteSlotStorage returns a [KeyValueStorage] backed by db.
// The schema must already be migrated.
func NewSQLiteSlotStorage(db *DB, logger *logger.Logger) KeyValueStorage {
	return &sqliteSlotStorage{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (s *sqliteSlotStorage) Get(ctx context.Context, slot string) ([]byte, error) {
	log := logger.FromContext(ctx)

	query, args, err := getSlotQuery(slot)
	if err != nil {
		return nil, &PersistenceError{Op: "get", Slot: slot, Err: errors.Join(ErrBuildingSQLQuery, err)}
	}

	var value []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrSlotNotFound
	case err != nil:
		log.Err(err).
			Str("func", "sqliteSlotStorage.Get").
			Str("slot", slot).
			Msg("failed to read slot")
		return nil, &PersistenceError{Op: "get", Slot: slot, Err: errors.Join(ErrExecutingQuery, err)}
	}

	// a NULL or zero-length value counts as an empty slot
	if len(value) == 0 {
		return nil, ErrSlotNotFound
	}
	return value, nil
}

func (s *sqliteSlotStorage) Set(ctx context.Context, slot string, value []byte) error {
	log := logger.FromContext(ctx)

	query, args, err := setSlotQuery(slot, value, s.now().UTC().Unix())
	if err != nil {
		return &PersistenceError{Op: "set", Slot: slot, Err: errors.Join(ErrBuildingSQLQuery, err)}
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sqliteSlotStorage.Set").
			Str("slot", slot).
			Int("size", len(value)).
			Msg("failed to write slot")
		return &PersistenceError{Op: "set", Slot: slot, Err: errors.Join(ErrExecutingStatement, err)}
	}

	log.Debug().
		Str("func", "sqliteSlotStorage.Set").
		Str("slot", slot).
		Int("size", len(value)).
		Msg("slot written")
	return nil
}

func (s *sqliteSlotStorage) Remove(ctx context.Context, slot string) error {
	log := logger.FromContext(ctx)

	query, args, err := removeSlotQuery(slot)
	if err != nil {
		return &PersistenceError{Op: "remove", Slot: slot, Err: errors.Join(ErrBuildingSQLQuery, err)}
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sqliteSlotStorage.Remove").
			Str("slot", slot).
			Msg("failed to remove slot")
		return &PersistenceError{Op: "remove", Slot: slot, Err: fmt.Errorf("%w: %w", ErrExecutingStatement, err)}
	}
	return nil
}
