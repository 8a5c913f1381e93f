// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package generator produces password candidates from a [models.PasswordPolicy].
package generator

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/MKhiriev/go-vaultx/models"
)

// Character classes of the pool.
const (
	LowerChars   = "abcdefghijklmnopqrstuvwxyz"
	UpperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DigitChars   = "0123456789"
	SymbolChars  = "!@#$%^&*()-_=+[]{};:,.<>/?"
	AmbiguousSet = "Il1O0"
)

var (
	ErrEmptyCharset  = errors.New("no character class selected")
	ErrInvalidLength = fmt.Errorf("password length must be between %d and %d", models.MinPasswordLength, models.MaxPasswordLength)
)

// Generator draws password candidates.
type Generator struct {
	random io.Reader
}

// New returns a generator backed by the OS CSPRNG.
func New() *Generator {
	return &Generator{random: rand.Reader}
}

// Generate returns a password of policy.Length characters drawn uniformly
// from the pool selected by the policy.
func (g *Generator) Generate(policy models.PasswordPolicy) (string, error) {
	if policy.Length < models.MinPasswordLength || policy.Length > models.MaxPasswordLength {
		return "", ErrInvalidLength
	}

	pool := Charset(policy)
	if pool == "" {
		return "", ErrEmptyCharset
	}

	size := big.NewInt(int64(len(pool)))
	var sb strings.Builder
	sb.Grow(policy.Length)
	for range policy.Length {
		n, err := rand.Int(g.random, size)
		if err != nil {
			return "", fmt.Errorf("draw random index: %w", err)
		}
		sb.WriteByte(pool[n.Int64()])
	}
	return sb.String(), nil
}

// Charset returns the character pool selected by policy.
func Charset(policy models.PasswordPolicy) string {
	var pool strings.Builder
	if policy.Lower {
		pool.WriteString(LowerChars)
	}
	if policy.Upper {
		pool.WriteString(UpperChars)
	}
	if policy.Digits {
		pool.WriteString(DigitChars)
	}
	if policy.Symbols {
		pool.WriteString(SymbolChars)
	}

	if !policy.ExcludeAmbiguous {
		return pool.String()
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(AmbiguousSet, r) {
			return -1
		}
		return r
	}, pool.String())
}
