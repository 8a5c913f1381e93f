// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	slotsTable = "kv_slots"

	upsertSlotSuffix = `ON CONFLICT(slot) DO UPDATE SET
			value      = excluded.value,
			updated_at = excluded.updated_at`
)

// sqlite uses "?" placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func getSlotQuery(slot string) (string, []any, error) {
	return psql.
		Select("value").
		From(slotsTable).
		Where(sq.Eq{"slot": slot}).
		ToSql()
}

func setSlotQuery(slot string, value []byte, updatedAt int64) (string, []any, error) {
	return psql.
		Insert(slotsTable).
		Columns("slot", "value", "updated_at").
		Values(slot, value, updatedAt).
		Suffix(upsertSlotSuffix).
		ToSql()
}

func removeSlotQuery(slot string) (string, []any, error) {
	return psql.
		Delete(slotsTable).
		Where(sq.Eq{"slot": slot}).
		ToSql()
}
