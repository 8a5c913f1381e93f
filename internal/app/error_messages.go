// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the message strings the VaultX identity service
// writes into the "error" field of its JSON error bodies.
//
// The client matches on them to tell apart failures that share one HTTP
// status, e.g. a missing field and an existing account are both 400.
package app

const (
	// MsgMissingCredentials is returned by POST /api/login when the email or
	// the password is empty.
	MsgMissingCredentials = "Missing credentials"

	// MsgMissingFields is returned by POST /api/signup when the name, email or
	// password is empty.
	MsgMissingFields = "Missing fields"

	// MsgUserAlreadyExists is returned by POST /api/signup when the email is
	// already registered.
	MsgUserAlreadyExists = "User already exists"

	// MsgUserNotFound is returned when no account matches the email (login)
	// or the token subject (me).
	MsgUserNotFound = "User not found"

	// MsgInvalidPassword is returned by POST /api/login on a password mismatch.
	MsgInvalidPassword = "Invalid password"

	// MsgNotLoggedIn is returned by GET /api/me when no token was sent.
	MsgNotLoggedIn = "Not logged in"

	// MsgInvalidOrExpiredToken is returned by GET /api/me when the token can't
	// be verified.
	MsgInvalidOrExpiredToken = "Invalid or expired token"

	// MsgInternalServerError accompanies every 500 response.
	MsgInternalServerError = "Internal Server Error"
)
