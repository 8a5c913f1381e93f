package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned by [TokenExpiry] for a token without an exp claim.
var ErrNoExpiry = errors.New("token has no expiration")

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// The client never holds the signing key; the identity service remains the
// authority and rejects a forged token on the next /api/me call.
//
// Example usage:
//
//	exp, err := utils.TokenExpiry(token)
//	if err == nil && time.Now().After(exp) {
//	    // drop the stored session
//	}
func TokenExpiry(tokenString string) (time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, fmt.Errorf("error occurred parsing token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("error occurred reading exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}
	return exp.Time, nil
}

// TokenExpired reports whether the token is expired at now. A token that
// can't be parsed counts as expired; a token without exp never expires.
func TokenExpired(tokenString string, now time.Time) bool {
	exp, err := TokenExpiry(tokenString)
	switch {
	case errors.Is(err, ErrNoExpiry):
		return false
	case err != nil:
		return true
	default:
		return !now.Before(exp)
	}
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
