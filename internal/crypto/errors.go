// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "fmt"

// KeyFormatError is returned by [ImportToken] when a persisted key token
// can't be turned back into a [VaultKey].
type KeyFormatError struct {
	Reason string
	Err    error
}

func (e *KeyFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed vault key token: %s: %v", e.Reason, e.Err)
	}
	return "malformed vault key token: " + e.Reason
}

func (e *KeyFormatError) Unwrap() error {
	return e.Err
}

// DecryptError is returned by [VaultCodec.Decrypt] when a blob fails
// authentication, is truncated, or holds a payload that is not a well-formed
// vault collection. A blob that produced a DecryptError must never be
// trusted, not even partially.
type DecryptError struct {
	Reason string
	Err    error
}

func (e *DecryptError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("vault decryption failed: %s: %v", e.Reason, e.Err)
	}
	return "vault decryption failed: " + e.Reason
}

func (e *DecryptError) Unwrap() error {
	return e.Err
}
