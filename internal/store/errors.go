package store

import (
	"errors"
	"fmt"
)

// ErrSlotNotFound is returned by [KeyValueStorage.Get] when nothing is stored
// in the requested slot. Callers should use [errors.Is] to match it.
var ErrSlotNotFound = errors.New("storage slot not found")

// Low-level database operation errors. These are wrapped into a
// [PersistenceError] by the SQLite storage.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT or DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning the slot value fails.
	ErrScanningRow = errors.New("failed to scan slot row")
)

// PersistenceError reports that the storage medium could not serve a
// read, write or removal. The operation that hit it must be aborted.
type PersistenceError struct {
	// Op is one of "get", "set" or "remove".
	Op   string
	Slot string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Slot, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
