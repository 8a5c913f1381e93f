// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-vaultx/internal/crypto"
	"github.com/MKhiriev/go-vaultx/internal/logger"
	"github.com/MKhiriev/go-vaultx/models"
)

// SessionState is the binding state of a [SessionGuard].
type SessionState int

const (
	StateUnbound SessionState = iota
	StateLoading
	StateBound
)

func (s SessionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateBound:
		return "bound"
	default:
		return "unbound"
	}
}

// Status is a snapshot of a [SessionGuard].
type Status struct {
	State    SessionState
	Identity models.Identity

	// KeyRegenerated is set when the key of the bound identity had to be
	// regenerated, i.e. the vault stored before is lost.
	KeyRegenerated bool
}

// Session is the vault of one identity: its key and its decrypted items.
// A Session is wiped when the guard moves to another identity; its Items
// then fail with ErrSessionClosed.
type Session struct {
	identity    models.Identity
	generation  uint64
	regenerated bool

	key   *crypto.VaultKey
	items VaultItemStore
}

func (s *Session) Identity() models.Identity { return s.identity }

// Items returns the vault item store of the session.
func (s *Session) Items() VaultItemStore { return s.items }

func (s *Session) KeyRegenerated() bool { return s.regenerated }

func (s *Session) wipe() {
	if s == nil {
		return
	}
	if s.items != nil {
		s.items.Close()
	}
	s.key.Wipe()
}

// pendingLoad is closed when a load finishes. err is set before done is
// closed.
type pendingLoad struct {
	done chan struct{}
	err  error
}

// SessionGuard makes sure that exactly the vault of the current identity is
// in memory. Every identity change wipes the previous session before the
// next one is loaded, and a load that was overtaken by a newer change is
// thrown away.
type SessionGuard struct {
	keys      KeyManager
	vaults    VaultLoader
	clipboard ClipboardRevoker
	pointer   IdentityPointer
	logger    *logger.Logger

	mu          sync.Mutex
	state       SessionState
	identity    models.Identity
	generation  uint64
	session     *Session
	regenerated bool
	loading     *pendingLoad

	hooksMu    sync.Mutex
	resetHooks []func()
}

// NewSessionGuard returns an unbound guard. clipboard and pointer may be nil.
func NewSessionGuard(keys KeyManager, vaults VaultLoader, clipboard ClipboardRevoker, pointer IdentityPointer, logger *logger.Logger) *SessionGuard {
	return &SessionGuard{
		keys:      keys,
		vaults:    vaults,
		clipboard: clipboard,
		pointer:   pointer,
		logger:    logger,
	}
}

// OnReset registers fn to be called after every wipe. UI code uses it to
// drop form buffers that may hold secrets of the previous identity.
func (g *SessionGuard) OnReset(fn func()) {
	g.hooksMu.Lock()
	defer g.hooksMu.Unlock()
	g.resetHooks = append(g.resetHooks, fn)
}

// Activate binds the guard to id and returns its session.
//
// Activating the identity that is already bound returns the bound session.
// Activating the identity that is loading waits for that load. Otherwise the
// current session is wiped and the vault of id is loaded. If another
// Activate or Deactivate happens meanwhile, the loaded session is wiped and
// ErrSessionSuperseded is returned. A load failure leaves the guard unbound.
//
// The zero identity is the same as Deactivate.
func (g *SessionGuard) Activate(ctx context.Context, id models.Identity) (*Session, error) {
	if id.IsNone() {
		return nil, g.Deactivate(ctx)
	}

	g.mu.Lock()
	if g.identity == id {
		switch g.state {
		case StateBound:
			session := g.session
			g.mu.Unlock()
			return session, nil
		case StateLoading:
			pending := g.loading
			g.mu.Unlock()
			return g.waitLoading(ctx, id, pending)
		}
	}

	wasActive := g.state != StateUnbound
	old := g.session
	g.session = nil
	g.generation++
	gen := g.generation
	g.state = StateLoading
	g.identity = id
	g.regenerated = false
	pending := &pendingLoad{done: make(chan struct{})}
	g.loading = pending
	old.wipe()
	g.mu.Unlock()

	defer close(pending.done)

	if wasActive {
		g.afterWipe()
	}

	log := g.logger.WithIdentity(id.String())
	log.Debug().Str("func", "SessionGuard.Activate").Uint64("generation", gen).Msg("loading vault")

	// storage calls of the load log with the identity
	session, err := g.load(log.WithContext(ctx), id, gen)

	g.mu.Lock()
	if g.generation != gen {
		g.mu.Unlock()
		session.wipe()
		log.Debug().Str("func", "SessionGuard.Activate").Uint64("generation", gen).Msg("vault load superseded")
		return nil, ErrSessionSuperseded
	}
	if err != nil {
		pending.err = err
		g.state = StateUnbound
		g.identity = ""
		g.mu.Unlock()
		log.Err(err).Str("func", "SessionGuard.Activate").Msg("failed to load vault")
		return nil, err
	}
	g.session = session
	g.state = StateBound
	g.regenerated = session.regenerated
	g.mu.Unlock()

	log.Info().
		Str("func", "SessionGuard.Activate").
		Bool("key_regenerated", session.regenerated).
		Msg("vault session bound")

	return session, nil
}

// Deactivate wipes the current session, revokes a clipboard exposure and
// forgets the durable identity pointer. The key and the vault of the
// identity stay in storage. It is a no-op when the guard is unbound.
func (g *SessionGuard) Deactivate(ctx context.Context) error {
	g.mu.Lock()
	if g.state == StateUnbound {
		g.mu.Unlock()
		return nil
	}

	old := g.session
	previous := g.identity
	g.session = nil
	g.generation++
	g.state = StateUnbound
	g.identity = ""
	g.regenerated = false
	old.wipe()
	g.mu.Unlock()

	g.afterWipe()

	g.logger.Info().
		Str("func", "SessionGuard.Deactivate").
		Str("identity", previous.String()).
		Msg("vault session closed")

	if g.pointer != nil {
		return g.pointer.ForgetCurrent(ctx)
	}
	return nil
}

// Status returns the current state of the guard.
func (g *SessionGuard) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()

	return Status{
		State:          g.state,
		Identity:       g.identity,
		KeyRegenerated: g.regenerated,
	}
}

// Session returns the bound session, or ErrNoActiveSession.
func (g *SessionGuard) Session() (*Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateBound || g.session == nil {
		return nil, ErrNoActiveSession
	}
	return g.session, nil
}

func (g *SessionGuard) load(ctx context.Context, id models.Identity, gen uint64) (*Session, error) {
	key, regenerated, err := g.keys.ResolveKey(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := g.vaults.Load(ctx, id, key)
	if err != nil {
		key.Wipe()
		return nil, err
	}

	return &Session{
		identity:    id,
		generation:  gen,
		regenerated: regenerated,
		key:         key,
		items:       items,
	}, nil
}

// waitLoading waits for a load of id started by another caller and shares
// its outcome.
func (g *SessionGuard) waitLoading(ctx context.Context, id models.Identity, pending *pendingLoad) (*Session, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-pending.done:
	}

	if pending.err != nil {
		return nil, pending.err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == StateBound && g.identity == id {
		return g.session, nil
	}
	return nil, ErrSessionSuperseded
}

// afterWipe revokes the clipboard and runs the reset hooks.
func (g *SessionGuard) afterWipe() {
	if g.clipboard != nil {
		if _, err := g.clipboard.Revoke(); err != nil {
			g.logger.Warn().Err(err).Str("func", "SessionGuard.afterWipe").Msg("failed to revoke clipboard")
		}
	}

	g.hooksMu.Lock()
	hooks := append([]func(){}, g.resetHooks...)
	g.hooksMu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}
