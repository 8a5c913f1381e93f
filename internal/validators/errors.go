package validators

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyID       = errors.New("id is required")
	ErrEmptyTitle    = errors.New("title is required")
	ErrEmptyUsername = errors.New("username is required")
	ErrEmptyPassword = errors.New("password is required")

	ErrEmptyName     = errors.New("name is required")
	ErrEmptyEmail    = errors.New("email is required")
	ErrInvalidEmail  = errors.New("invalid email")
	ErrEmptyUserPass = errors.New("account password is required")
)

// ValidationError reports which field of the input failed validation.
// Err is one of the sentinel errors of this package.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func fieldError(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}
