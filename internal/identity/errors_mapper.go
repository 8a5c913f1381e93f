// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-vaultx/internal/adapter"
	"github.com/MKhiriev/go-vaultx/internal/app"
)

// mapAdapterError translates a transport error of the identity adapter into
// an error of this package. The adapter error stays in the chain, so both can
// be matched with errors.Is.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	var mapped error
	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		switch msg {
		case app.MsgUserAlreadyExists:
			mapped = ErrUserAlreadyExists
		case app.MsgMissingFields, app.MsgMissingCredentials:
			mapped = ErrMissingFields
		}

	case errors.Is(err, adapter.ErrUnauthorized):
		switch msg {
		case app.MsgInvalidPassword:
			mapped = ErrWrongPassword
		default:
			mapped = ErrTokenRejected
		}

	case errors.Is(err, adapter.ErrForbidden):
		mapped = ErrTokenRejected

	case errors.Is(err, adapter.ErrNotFound):
		mapped = ErrUserNotFound

	case errors.Is(err, adapter.ErrInternalServerError), errors.Is(err, adapter.ErrBadGateway),
		errors.Is(err, adapter.ErrServiceUnavailable), errors.Is(err, adapter.ErrTooManyRequests):
		mapped = ErrServiceFailure
	}

	if mapped == nil {
		return err
	}
	return fmt.Errorf("%w: %w", mapped, err)
}

// extractBody extracts the body from a message of the form "bad request: <body>".
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
