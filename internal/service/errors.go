package service

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionClosed is returned by a VaultItemStore whose session has been
	// wiped by an identity change or logout.
	ErrSessionClosed = errors.New("vault session is closed")

	// ErrSessionSuperseded is returned by Activate when another identity
	// change happened while the vault was loading. The loaded data is wiped.
	ErrSessionSuperseded = errors.New("vault session superseded by a newer identity change")

	// ErrNoActiveSession is returned when an operation needs a bound session
	// and the guard is unbound or still loading.
	ErrNoActiveSession = errors.New("no active vault session")

	ErrNoIdentity = errors.New("identity is empty")
)

// NotFoundError is returned when no vault item has the requested ID.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("vault item %q not found", e.ID)
}
