// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-vaultx/internal/crypto"
	"github.com/MKhiriev/go-vaultx/internal/logger"
	"github.com/MKhiriev/go-vaultx/internal/store"
	"github.com/MKhiriev/go-vaultx/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedKeys задерживает ResolveKey для выбранных identity до закрытия gate.
type gatedKeys struct {
	KeyManager
	gates   map[models.Identity]chan struct{}
	entered chan models.Identity
	calls   atomic.Int64
}

func (g *gatedKeys) ResolveKey(ctx context.Context, id models.Identity) (*crypto.VaultKey, bool, error) {
	g.calls.Add(1)
	if gate, ok := g.gates[id]; ok {
		g.entered <- id
		<-gate
	}
	return g.KeyManager.ResolveKey(ctx, id)
}

// failingKeys возвращает err, пока он не сброшен.
type failingKeys struct {
	KeyManager
	mu  sync.Mutex
	err error
}

func (f *failingKeys) ResolveKey(ctx context.Context, id models.Identity) (*crypto.VaultKey, bool, error) {
	f.mu.Lock()
	err := f.err
	f.mu.Unlock()
	if err != nil {
		return nil, false, err
	}
	return f.KeyManager.ResolveKey(ctx, id)
}

type spyRevoker struct{ calls atomic.Int64 }

func (s *spyRevoker) Revoke() (bool, error) {
	s.calls.Add(1)
	return true, nil
}

type spyPointer struct{ calls atomic.Int64 }

func (s *spyPointer) ForgetCurrent(context.Context) error {
	s.calls.Add(1)
	return nil
}

type guardFixture struct {
	guard   *SessionGuard
	slots   store.KeyValueStorage
	keys    KeyManager
	revoker *spyRevoker
	pointer *spyPointer
	resets  *atomic.Int64
}

func newGuardFixture(t *testing.T, wrap func(KeyManager) KeyManager) guardFixture {
	t.Helper()
	slots := store.NewMemorySlotStorage()
	var keys KeyManager = NewKeyManager(slots, crypto.AES256GCM, logger.Nop())
	if wrap != nil {
		keys = wrap(keys)
	}

	f := guardFixture{
		slots:   slots,
		keys:    keys,
		revoker: &spyRevoker{},
		pointer: &spyPointer{},
		resets:  &atomic.Int64{},
	}
	f.guard = NewSessionGuard(keys, newTestLoader(slots, &seqIDs{}), f.revoker, f.pointer, logger.Nop())
	f.guard.OnReset(func() { f.resets.Add(1) })
	return f
}

// ── Activate / Deactivate ───────────────────────────────────────────────────

func TestSessionGuard_Activate_Binds(t *testing.T) {
	f := newGuardFixture(t, nil)
	assert.Equal(t, Status{State: StateUnbound}, f.guard.Status())

	session, err := f.guard.Activate(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, models.Identity("alice"), session.Identity())
	assert.False(t, session.KeyRegenerated())
	assert.Empty(t, session.Items().Items())

	assert.Equal(t, Status{State: StateBound, Identity: "alice"}, f.guard.Status())

	current, err := f.guard.Session()
	require.NoError(t, err)
	assert.Same(t, session, current)
}

func TestSessionGuard_Activate_SameIdentityIsNoop(t *testing.T) {
	f := newGuardFixture(t, nil)
	ctx := context.Background()

	first, err := f.guard.Activate(ctx, "alice")
	require.NoError(t, err)
	_, err = first.Items().Add(ctx, githubDraft)
	require.NoError(t, err)

	second, err := f.guard.Activate(ctx, "alice")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Len(t, second.Items().Items(), 1)
	assert.Equal(t, int64(0), f.resets.Load())
	assert.Equal(t, int64(0), f.revoker.calls.Load())
}

func TestSessionGuard_Isolation(t *testing.T) {
	f := newGuardFixture(t, nil)
	ctx := context.Background()

	aliceSession, err := f.guard.Activate(ctx, "alice")
	require.NoError(t, err)
	_, err = aliceSession.Items().Add(ctx, models.VaultItemDraft{Title: "X", Username: "alice", Password: "alice-secret"})
	require.NoError(t, err)

	bobSession, err := f.guard.Activate(ctx, "bob")
	require.NoError(t, err)

	// в памяти от alice ничего не осталось
	assert.Empty(t, aliceSession.Items().Items())
	_, err = aliceSession.Items().Add(ctx, githubDraft)
	assert.ErrorIs(t, err, ErrSessionClosed)

	assert.Empty(t, bobSession.Items().Items())
	assert.Empty(t, bobSession.Items().Search("X"))

	_, err = bobSession.Items().Add(ctx, models.VaultItemDraft{Title: "Y", Username: "bob", Password: "bob-secret"})
	require.NoError(t, err)

	// блоб bob содержит только его запись
	bobKey, _, err := f.keys.ResolveKey(ctx, "bob")
	require.NoError(t, err)
	bobItems := persisted(t, f.slots, "bob", bobKey)
	require.Len(t, bobItems, 1)
	assert.Equal(t, "Y", bobItems[0].Title)

	// ключ bob не открывает блоб alice
	aliceBlob, err := f.slots.Get(ctx, store.ItemsSlot("alice"))
	require.NoError(t, err)
	_, err = crypto.NewVaultCodec().Decrypt(aliceBlob, bobKey)
	var de *crypto.DecryptError
	assert.ErrorAs(t, err, &de)

	assert.Equal(t, int64(1), f.resets.Load())
	assert.Equal(t, int64(1), f.revoker.calls.Load())
}

func TestSessionGuard_EndToEnd_ReactivateRestoresVault(t *testing.T) {
	f := newGuardFixture(t, nil)
	ctx := context.Background()

	session, err := f.guard.Activate(ctx, "alice")
	require.NoError(t, err)

	var added []models.VaultItem
	for _, d := range []models.VaultItemDraft{
		{Title: "GitHub", Username: "alice", Password: "p1", URL: "https://github.com"},
		{Title: "Mail", Username: "alice@example.com", Password: "p2"},
		{Title: "Bank", Username: "0042", Password: "p3", Notes: "pin"},
	} {
		item, err := session.Items().Add(ctx, d)
		require.NoError(t, err)
		added = append(added, item)
	}

	require.NoError(t, f.guard.Deactivate(ctx))
	assert.Equal(t, Status{State: StateUnbound}, f.guard.Status())
	assert.Equal(t, int64(1), f.pointer.calls.Load())

	_, err = f.slots.Get(ctx, store.KeySlot("alice"))
	require.NoError(t, err, "key slot survives logout")

	again, err := f.guard.Activate(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, added, again.Items().Items())
	assert.False(t, again.KeyRegenerated())
}

func TestSessionGuard_Deactivate(t *testing.T) {
	f := newGuardFixture(t, nil)
	ctx := context.Background()

	session, err := f.guard.Activate(ctx, "alice")
	require.NoError(t, err)
	_, err = session.Items().Add(ctx, githubDraft)
	require.NoError(t, err)

	require.NoError(t, f.guard.Deactivate(ctx))

	_, err = f.guard.Session()
	assert.ErrorIs(t, err, ErrNoActiveSession)
	assert.Empty(t, session.Items().Items())
	assert.Equal(t, int64(1), f.revoker.calls.Load())
	assert.Equal(t, int64(1), f.resets.Load())
	assert.Equal(t, int64(1), f.pointer.calls.Load())

	// повторный Deactivate ничего не делает
	require.NoError(t, f.guard.Deactivate(ctx))
	assert.Equal(t, int64(1), f.pointer.calls.Load())
	assert.Equal(t, int64(1), f.resets.Load())
}

func TestSessionGuard_Activate_NoneDeactivates(t *testing.T) {
	f := newGuardFixture(t, nil)
	ctx := context.Background()

	_, err := f.guard.Activate(ctx, "alice")
	require.NoError(t, err)

	session, err := f.guard.Activate(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Equal(t, StateUnbound, f.guard.Status().State)
}

// ── Supersede / concurrency ─────────────────────────────────────────────────

func TestSessionGuard_SupersededActivationIsDiscarded(t *testing.T) {
	gate := make(chan struct{})
	var gk *gatedKeys
	f := newGuardFixture(t, func(k KeyManager) KeyManager {
		gk = &gatedKeys{KeyManager: k, gates: map[models.Identity]chan struct{}{"alice": gate}, entered: make(chan models.Identity, 4)}
		return gk
	})
	ctx := context.Background()

	type result struct {
		session *Session
		err     error
	}
	aliceDone := make(chan result, 1)
	go func() {
		s, err := f.guard.Activate(ctx, "alice")
		aliceDone <- result{s, err}
	}()

	require.Equal(t, models.Identity("alice"), <-gk.entered)
	assert.Equal(t, Status{State: StateLoading, Identity: "alice"}, f.guard.Status())

	bob, err := f.guard.Activate(ctx, "bob")
	require.NoError(t, err)

	close(gate)
	res := <-aliceDone
	assert.ErrorIs(t, res.err, ErrSessionSuperseded)
	assert.Nil(t, res.session)

	current, err := f.guard.Session()
	require.NoError(t, err)
	assert.Same(t, bob, current)
	assert.Equal(t, Status{State: StateBound, Identity: "bob"}, f.guard.Status())
}

func TestSessionGuard_DeactivateDuringLoadDiscards(t *testing.T) {
	gate := make(chan struct{})
	var gk *gatedKeys
	f := newGuardFixture(t, func(k KeyManager) KeyManager {
		gk = &gatedKeys{KeyManager: k, gates: map[models.Identity]chan struct{}{"alice": gate}, entered: make(chan models.Identity, 4)}
		return gk
	})
	ctx := context.Background()

	errs := make(chan error, 1)
	go func() {
		_, err := f.guard.Activate(ctx, "alice")
		errs <- err
	}()
	<-gk.entered

	require.NoError(t, f.guard.Deactivate(ctx))
	close(gate)

	assert.ErrorIs(t, <-errs, ErrSessionSuperseded)
	assert.Equal(t, StateUnbound, f.guard.Status().State)
}

func TestSessionGuard_ConcurrentActivateSameIdentityLoadsOnce(t *testing.T) {
	gate := make(chan struct{})
	var gk *gatedKeys
	f := newGuardFixture(t, func(k KeyManager) KeyManager {
		gk = &gatedKeys{KeyManager: k, gates: map[models.Identity]chan struct{}{"alice": gate}, entered: make(chan models.Identity, 4)}
		return gk
	})
	ctx := context.Background()

	sessions := make(chan *Session, 2)
	go func() {
		s, err := f.guard.Activate(ctx, "alice")
		assert.NoError(t, err)
		sessions <- s
	}()
	<-gk.entered

	go func() {
		s, err := f.guard.Activate(ctx, "alice")
		assert.NoError(t, err)
		sessions <- s
	}()

	// даём второму вызову дойти до ожидания
	time.Sleep(20 * time.Millisecond)
	close(gate)

	first, second := <-sessions, <-sessions
	require.NotNil(t, first)
	assert.Same(t, first, second)
	assert.Equal(t, int64(1), gk.calls.Load())
}

// ── Failures ────────────────────────────────────────────────────────────────

func TestSessionGuard_LoadFailureLeavesUnbound(t *testing.T) {
	var fk *failingKeys
	f := newGuardFixture(t, func(k KeyManager) KeyManager {
		fk = &failingKeys{KeyManager: k, err: &store.PersistenceError{Op: "get", Slot: store.KeySlot("alice"), Err: errors.New("locked")}}
		return fk
	})
	ctx := context.Background()

	_, err := f.guard.Activate(ctx, "alice")
	var pe *store.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, Status{State: StateUnbound}, f.guard.Status())

	_, err = f.slots.Get(ctx, store.KeySlot("alice"))
	assert.ErrorIs(t, err, store.ErrSlotNotFound, "no key is generated on a read failure")

	fk.mu.Lock()
	fk.err = nil
	fk.mu.Unlock()

	session, err := f.guard.Activate(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.Identity("alice"), session.Identity())
}

func TestSessionGuard_KeyRegenerationIsSurfaced(t *testing.T) {
	f := newGuardFixture(t, nil)
	ctx := context.Background()

	session, err := f.guard.Activate(ctx, "alice")
	require.NoError(t, err)
	_, err = session.Items().Add(ctx, githubDraft)
	require.NoError(t, err)
	require.NoError(t, f.guard.Deactivate(ctx))

	require.NoError(t, f.slots.Set(ctx, store.KeySlot("alice"), []byte("garbage")))

	session, err = f.guard.Activate(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, session.KeyRegenerated())
	assert.True(t, f.guard.Status().KeyRegenerated)
	assert.Empty(t, session.Items().Items(), "old vault can't be opened with the new key")

	_, err = f.slots.Get(ctx, store.ItemsSlot("alice"))
	assert.ErrorIs(t, err, store.ErrSlotNotFound, "unusable vault is erased")
}

func TestSessionState_String(t *testing.T) {
	assert.Equal(t, "unbound", StateUnbound.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "bound", StateBound.String())
}
