// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It binds the vault session guard to identity changes, runs the periodic
// identity check and the terminal UI, and revokes any clipboard exposure
// when the process exits.
package client
