// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package identity tracks which user is logged in on this device.
//
// The [Provider] talks to the remote identity service through
// [adapter.IdentityAdapter], keeps the current user in memory and persists a
// pointer to it in the "vaultx-user" slot so that a restart can restore the
// session. Listeners registered with [Provider.OnChange] are told about every
// identity change; the client binds the session guard to them.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-vaultx/internal/adapter"
	"github.com/MKhiriev/go-vaultx/internal/logger"
	"github.com/MKhiriev/go-vaultx/internal/store"
	"github.com/MKhiriev/go-vaultx/internal/utils"
	"github.com/MKhiriev/go-vaultx/internal/validators"
	"github.com/MKhiriev/go-vaultx/models"
)

// ChangeFunc is called with the new identity after every change. The zero
// Identity means that nobody is logged in any more.
type ChangeFunc func(models.Identity)

// Provider is the source of the current identity.
type Provider struct {
	adapter   adapter.IdentityAdapter
	slots     store.KeyValueStorage
	validator validators.Validator
	logger    *logger.Logger
	now       func() time.Time

	mu      sync.RWMutex
	current *models.CurrentUser

	listenersMu sync.Mutex
	listeners   []ChangeFunc
}

// NewProvider constructs a Provider with no current user. Call
// [Provider.Restore] to pick up the user of the previous run.
func NewProvider(identityAdapter adapter.IdentityAdapter, slots store.KeyValueStorage, validator validators.Validator, log *logger.Logger) *Provider {
	return &Provider{
		adapter:   identityAdapter,
		slots:     slots,
		validator: validator,
		logger:    log,
		now:       time.Now,
	}
}

// Current returns the logged in user. The second value is false when nobody
// is logged in.
func (p *Provider) Current() (models.CurrentUser, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.current == nil {
		return models.CurrentUser{}, false
	}
	return *p.current, true
}

// Identity returns the identity of the current user, or the zero Identity.
func (p *Provider) Identity() models.Identity {
	user, ok := p.Current()
	if !ok {
		return ""
	}
	return user.Identity()
}

// OnChange registers fn to be called after every identity change.
// Listeners run synchronously on the goroutine that caused the change and
// must not call back into methods of the Provider that change the identity.
func (p *Provider) OnChange(fn ChangeFunc) {
	p.listenersMu.Lock()
	defer p.listenersMu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// Login authenticates with the email and password of user and makes the
// returned account the current identity.
func (p *Provider) Login(ctx context.Context, user models.User) (models.CurrentUser, error) {
	if err := p.validator.Validate(ctx, user, validators.FieldEmail, validators.FieldUserPass); err != nil {
		return models.CurrentUser{}, err
	}

	user.Email = strings.TrimSpace(user.Email)
	current, err := p.adapter.Login(ctx, user)
	if err != nil {
		return models.CurrentUser{}, fmt.Errorf("login: %w", mapAdapterError(err))
	}

	if err = p.switchTo(ctx, &current); err != nil {
		return models.CurrentUser{}, err
	}

	p.logger.Info().
		Str("func", "Provider.Login").
		Str("identity", current.Name).
		Msg("user logged in")

	return current, nil
}

// Signup registers a new account and logs into it.
func (p *Provider) Signup(ctx context.Context, user models.User) (models.CurrentUser, error) {
	if err := p.validator.Validate(ctx, user, validators.FieldName, validators.FieldEmail, validators.FieldUserPass); err != nil {
		return models.CurrentUser{}, err
	}

	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.TrimSpace(user.Email)
	if _, err := p.adapter.Signup(ctx, user); err != nil {
		return models.CurrentUser{}, fmt.Errorf("signup: %w", mapAdapterError(err))
	}

	return p.Login(ctx, user)
}

// Logout forgets the current user and notifies listeners. The vault key and
// the encrypted vault of the user stay in storage.
func (p *Provider) Logout(ctx context.Context) error {
	had := !p.Identity().IsNone()
	if err := p.ForgetCurrent(ctx); err != nil {
		return err
	}
	if had {
		p.logger.Info().Str("func", "Provider.Logout").Msg("user logged out")
		p.notify("")
	}
	return nil
}

// ForgetCurrent clears the current user and its durable pointer without
// notifying listeners. The session guard calls it when it unbinds.
func (p *Provider) ForgetCurrent(ctx context.Context) error {
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()

	if err := p.slots.Remove(ctx, store.CurrentUserSlot); err != nil {
		return fmt.Errorf("forget current user: %w", err)
	}
	return nil
}

// Restore loads the user persisted by a previous run. A missing pointer
// yields the zero Identity. A corrupted pointer or one whose token has
// expired is removed and also yields the zero Identity.
func (p *Provider) Restore(ctx context.Context) (models.Identity, error) {
	raw, err := p.slots.Get(ctx, store.CurrentUserSlot)
	if errors.Is(err, store.ErrSlotNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("restore current user: %w", err)
	}

	var user models.CurrentUser
	if err = json.Unmarshal(raw, &user); err != nil || strings.TrimSpace(user.Name) == "" || user.Token == "" {
		p.logger.Warn().
			Str("func", "Provider.Restore").
			Err(errors.Join(ErrCorruptedPointer, err)).
			Msg("dropping stored current user")
		return "", p.ForgetCurrent(ctx)
	}

	if utils.TokenExpired(user.Token, p.now()) {
		p.logger.Info().
			Str("func", "Provider.Restore").
			Str("identity", user.Name).
			Msg("stored token expired")
		return "", p.ForgetCurrent(ctx)
	}

	p.mu.Lock()
	p.current = &user
	p.mu.Unlock()
	p.notify(user.Identity())

	return user.Identity(), nil
}

// Validate asks the identity service whether the token of the current user
// is still accepted. A token the service rejects, or one that has expired,
// logs the user out. Network failures are returned and change nothing.
func (p *Provider) Validate(ctx context.Context) error {
	user, ok := p.Current()
	if !ok {
		return nil
	}

	if utils.TokenExpired(user.Token, p.now()) {
		p.logger.Info().
			Str("func", "Provider.Validate").
			Str("identity", user.Name).
			Msg("token expired")
		return p.logoutIfCurrent(ctx, user)
	}

	_, err := p.adapter.Me(ctx, user.Token)
	if adapter.IsRejectedToken(err) {
		p.logger.Info().
			Str("func", "Provider.Validate").
			Str("identity", user.Name).
			Err(err).
			Msg("token rejected by identity service")
		return p.logoutIfCurrent(ctx, user)
	}
	if err != nil {
		return fmt.Errorf("validate identity: %w", mapAdapterError(err))
	}
	return nil
}

// logoutIfCurrent logs out only if user is still the current user, so that a
// slow check never logs out someone who logged in meanwhile.
func (p *Provider) logoutIfCurrent(ctx context.Context, user models.CurrentUser) error {
	if current, ok := p.Current(); !ok || current != user {
		return nil
	}
	return p.Logout(ctx)
}

func (p *Provider) switchTo(ctx context.Context, user *models.CurrentUser) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal current user: %w", err)
	}
	if err = p.slots.Set(ctx, store.CurrentUserSlot, raw); err != nil {
		return fmt.Errorf("persist current user: %w", err)
	}

	p.mu.Lock()
	p.current = user
	p.mu.Unlock()

	p.notify(user.Identity())
	return nil
}

func (p *Provider) notify(id models.Identity) {
	p.listenersMu.Lock()
	listeners := append([]ChangeFunc(nil), p.listeners...)
	p.listenersMu.Unlock()

	for _, fn := range listeners {
		fn(id)
	}
}
