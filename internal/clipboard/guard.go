// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package clipboard bounds how long a copied secret stays in the shared
// clipboard.
//
// Every [Guard.Expose] arms a countdown owned by exactly one goroutine. When
// it runs out the clipboard is overwritten with a placeholder. A new
// exposure, [Guard.ClearNow] or [Guard.Revoke] stop the running countdown and
// wait for its goroutine to exit before touching the clipboard, so a stale
// countdown can never overwrite a newer secret.
//
// Revocation is best-effort: another application may overwrite the clipboard
// in the meantime, and a process killed mid-window leaves the secret in
// place.
package clipboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-vaultx/internal/config"
	"github.com/MKhiriev/go-vaultx/internal/logger"
)

// Default exposure settings.
const (
	DefaultWindow            = 30
	DefaultTick              = time.Second
	DefaultPlaceholder       = "🔒 VaultX cleared"
	DefaultManualPlaceholder = "🔒 VaultX manually cleared"
)

// Guard owns the clipboard exposure of secrets.
type Guard struct {
	sink   Sink
	logger *logger.Logger

	window            int
	tick              time.Duration
	placeholder       string
	manualPlaceholder string
	newTicker         TickerFactory

	// opMu serializes Expose, ClearNow and Revoke.
	opMu sync.Mutex

	mu  sync.Mutex
	exp *exposure
}

type exposure struct {
	remaining int
	active    bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewGuard returns a guard writing to sink. Zero values in cfg fall back to
// the defaults of this package.
func NewGuard(sink Sink, cfg config.ClientClipboard, log *logger.Logger) *Guard {
	g := &Guard{
		sink:              sink,
		logger:            log,
		window:            cfg.Window,
		tick:              cfg.Tick,
		placeholder:       cfg.Placeholder,
		manualPlaceholder: cfg.ManualPlaceholder,
		newTicker:         newTimeTicker,
	}
	if g.window <= 0 {
		g.window = DefaultWindow
	}
	if g.tick <= 0 {
		g.tick = DefaultTick
	}
	if g.placeholder == "" {
		g.placeholder = DefaultPlaceholder
	}
	if g.manualPlaceholder == "" {
		g.manualPlaceholder = DefaultManualPlaceholder
	}
	return g
}

// Expose writes secret to the clipboard and starts a countdown of Window
// ticks. A running exposure is superseded. If the write fails the previous
// secret is still bounded: the placeholder is written over it, or, when
// that fails too, its countdown is re-armed with the ticks it had left.
func (g *Guard) Expose(secret string) error {
	g.opMu.Lock()
	defer g.opMu.Unlock()

	left := g.stop()

	if err := g.sink.WriteAll(secret); err != nil {
		g.logger.Err(err).Str("func", "Guard.Expose").Msg("failed to write to clipboard")
		g.coverPrevious(left)
		return fmt.Errorf("copy to clipboard: %w", err)
	}

	g.arm(g.window)
	g.logger.Debug().
		Str("func", "Guard.Expose").
		Int("window", g.window).
		Msg("clipboard exposure armed")
	return nil
}

// ClearNow stops the countdown and overwrites the clipboard with the manual
// placeholder, whether or not an exposure is active. If the overwrite fails
// an active exposure keeps counting down.
func (g *Guard) ClearNow() error {
	g.opMu.Lock()
	defer g.opMu.Unlock()

	left := g.stop()

	if err := g.sink.WriteAll(g.manualPlaceholder); err != nil {
		g.logger.Err(err).Str("func", "Guard.ClearNow").Msg("failed to clear clipboard")
		if left > 0 {
			g.arm(left)
		}
		return fmt.Errorf("clear clipboard: %w", err)
	}
	return nil
}

// Revoke clears the clipboard with the manual placeholder only if an
// exposure is active, and reports whether it did. Used on session changes
// and shutdown, where unrelated clipboard content must be left alone.
func (g *Guard) Revoke() (bool, error) {
	g.opMu.Lock()
	defer g.opMu.Unlock()

	left := g.stop()
	if left == 0 {
		return false, nil
	}

	if err := g.sink.WriteAll(g.manualPlaceholder); err != nil {
		g.logger.Err(err).Str("func", "Guard.Revoke").Msg("failed to revoke clipboard exposure")
		g.arm(left)
		return true, fmt.Errorf("revoke clipboard: %w", err)
	}
	return true, nil
}

// Remaining returns the seconds (ticks) left in the current exposure, or 0.
func (g *Guard) Remaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.exp == nil || !g.exp.active {
		return 0
	}
	return g.exp.remaining
}

// Active reports whether a secret is currently exposed.
func (g *Guard) Active() bool {
	return g.Remaining() > 0
}

// arm starts a countdown of ticks for the secret now in the clipboard.
// Callers hold opMu.
func (g *Guard) arm(ticks int) {
	ctx, cancel := context.WithCancel(context.Background())
	e := &exposure{
		remaining: ticks,
		active:    true,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	ticker := g.newTicker(g.tick)

	g.mu.Lock()
	g.exp = e
	g.mu.Unlock()

	go g.countdown(ctx, e, ticker)
}

// coverPrevious handles a failed write after an exposure with left ticks
// was stopped: the placeholder goes over the old secret, and if that write
// fails the old countdown is re-armed. Callers hold opMu.
func (g *Guard) coverPrevious(left int) {
	if left == 0 {
		return
	}
	if err := g.sink.WriteAll(g.placeholder); err != nil {
		g.logger.Warn().Err(err).Str("func", "Guard.coverPrevious").Int("remaining", left).Msg("previous exposure re-armed")
		g.arm(left)
	}
}

// stop cancels the current countdown and waits for its goroutine to exit.
// It returns the ticks the exposure had left, 0 if none was active.
// Callers hold opMu.
func (g *Guard) stop() int {
	g.mu.Lock()
	e := g.exp
	g.exp = nil
	left := 0
	if e != nil && e.active {
		left = e.remaining
		e.active = false
	}
	g.mu.Unlock()

	if e == nil {
		return 0
	}
	e.cancel()
	<-e.done
	return left
}

func (g *Guard) countdown(ctx context.Context, e *exposure, ticker Ticker) {
	defer close(e.done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
		}

		g.mu.Lock()
		if !e.active || ctx.Err() != nil {
			g.mu.Unlock()
			return
		}
		e.remaining--
		if e.remaining > 0 {
			g.mu.Unlock()
			continue
		}
		e.active = false
		g.mu.Unlock()

		if err := g.sink.WriteAll(g.placeholder); err != nil {
			g.logger.Err(err).Str("func", "Guard.countdown").Msg("failed to clear clipboard on expiry")
			return
		}
		g.logger.Debug().Str("func", "Guard.countdown").Msg("clipboard exposure expired")
		return
	}
}
