package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")

	// ErrMissingToken is returned when a successful login carries no token.
	ErrMissingToken = errors.New("identity service issued no token")
	// ErrUnexpectedResponse is returned when a 2xx body lacks the user.
	ErrUnexpectedResponse = errors.New("unexpected identity service response")
)

// IsRejectedToken reports whether err means the identity service no longer
// accepts the token (as opposed to being unreachable).
func IsRejectedToken(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden) || errors.Is(err, ErrNotFound)
}
