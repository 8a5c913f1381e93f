// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package identity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/MKhiriev/go-vaultx/internal/adapter"
	"github.com/MKhiriev/go-vaultx/internal/app"
	"github.com/stretchr/testify/assert"
)

func TestMapAdapterError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"user exists", fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgUserAlreadyExists), ErrUserAlreadyExists},
		{"missing fields", fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgMissingFields), ErrMissingFields},
		{"missing credentials", fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgMissingCredentials), ErrMissingFields},
		{"wrong password", fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgInvalidPassword), ErrWrongPassword},
		{"not logged in", fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgNotLoggedIn), ErrTokenRejected},
		{"invalid token", fmt.Errorf("%w: %s", adapter.ErrForbidden, app.MsgInvalidOrExpiredToken), ErrTokenRejected},
		{"user not found", fmt.Errorf("%w: %s", adapter.ErrNotFound, app.MsgUserNotFound), ErrUserNotFound},
		{"server error", fmt.Errorf("%w: %s", adapter.ErrInternalServerError, app.MsgInternalServerError), ErrServiceFailure},
		{"unavailable", fmt.Errorf("%w: %s", adapter.ErrServiceUnavailable, "Service Unavailable"), ErrServiceFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapAdapterError(tt.in)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.in, "adapter error must stay in the chain")
		})
	}
}

func TestMapAdapterError_Passthrough(t *testing.T) {
	assert.NoError(t, mapAdapterError(nil))

	netErr := errors.New("dial tcp: connection refused")
	assert.Same(t, netErr, mapAdapterError(netErr))

	unknown := fmt.Errorf("%w: %s", adapter.ErrBadRequest, "something else")
	assert.Same(t, unknown, mapAdapterError(unknown))
}

func TestExtractBody(t *testing.T) {
	assert.Equal(t, "User not found", extractBody(errors.New("not found: User not found")))
	assert.Equal(t, "plain", extractBody(errors.New("plain")))
}
