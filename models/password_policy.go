// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Password length bounds accepted by the generator.
const (
	MinPasswordLength     = 8
	MaxPasswordLength     = 64
	DefaultPasswordLength = 16
)

// PasswordPolicy configures the password-candidate generator.
type PasswordPolicy struct {
	// Length is the number of characters to generate.
	Length int

	Lower   bool
	Upper   bool
	Digits  bool
	Symbols bool

	// ExcludeAmbiguous drops look-alike characters (Il1O0) from the pool.
	ExcludeAmbiguous bool
}

// DefaultPasswordPolicy returns a policy with every character class enabled
// and look-alikes excluded.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		Length:           DefaultPasswordLength,
		Lower:            true,
		Upper:            true,
		Digits:           true,
		Symbols:          true,
		ExcludeAmbiguous: true,
	}
}
