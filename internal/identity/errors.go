package identity

import "errors"

var (
	ErrMissingFields     = errors.New("required account fields are missing")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrWrongPassword     = errors.New("wrong password")
	ErrTokenRejected     = errors.New("token is expired or invalid")
	ErrServiceFailure    = errors.New("identity service failure")

	// ErrCorruptedPointer means the stored current-user record could not be read.
	ErrCorruptedPointer = errors.New("stored current user is corrupted")
)
