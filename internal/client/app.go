package client

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-vaultx/internal/config"
	"github.com/MKhiriev/go-vaultx/internal/logger"
	"github.com/MKhiriev/go-vaultx/internal/service"
	"github.com/MKhiriev/go-vaultx/internal/tui"
	"github.com/MKhiriev/go-vaultx/models"
)

// CheckJob periodically validates the current identity. It is implemented by
// *identity.CheckJob.
type CheckJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}

type App struct {
	ctx       context.Context
	identity  IdentitySource
	session   SessionBinder
	clipboard ClipboardRevoker
	checkJob  CheckJob
	ui        UI
	workers   config.ClientWorkers
	logger    *logger.Logger
}

// NewApp wires the runtime together and subscribes the session guard to
// identity changes. Identity changes must not happen before Run starts the
// UI; the UI restores the previous identity itself.
func NewApp(ctx context.Context, identity IdentitySource, session SessionBinder, clipboard ClipboardRevoker, checkJob CheckJob, ui UI, workers config.ClientWorkers, log *logger.Logger) (*App, error) {
	if identity == nil || session == nil || ui == nil {
		return nil, errors.New("client app: identity, session and ui are required")
	}

	a := &App{
		ctx:       ctx,
		identity:  identity,
		session:   session,
		clipboard: clipboard,
		checkJob:  checkJob,
		ui:        ui,
		workers:   workers,
		logger:    log,
	}
	identity.OnChange(a.onIdentityChange)

	return a, nil
}

// Run starts the identity check job and blocks in the UI until the user
// quits. On exit an active clipboard exposure is revoked.
func (a *App) Run() error {
	if a.checkJob != nil {
		a.checkJob.Start(a.ctx, a.workers.IdentityCheckInterval)
		defer a.checkJob.Stop()
	}
	defer a.revokeClipboard()

	a.logger.Info().Str("func", "App.Run").Msg("client started")
	err := a.ui.Run()
	a.logger.Info().Str("func", "App.Run").Msg("client stopped")

	return err
}

// onIdentityChange runs on the goroutine that changed the identity and
// blocks until the vault of id is bound or the guard is unbound.
func (a *App) onIdentityChange(id models.Identity) {
	if !id.IsNone() {
		a.ui.Send(tui.SessionLoadingMsg{Identity: id})
	}

	_, err := a.session.Activate(a.ctx, id)
	switch {
	case errors.Is(err, service.ErrSessionSuperseded):
		// the newer change reports its own outcome
		return
	case err != nil:
		a.logger.Err(err).
			Str("func", "App.onIdentityChange").
			Str("identity", id.String()).
			Msg("failed to bind vault session")
	}

	a.ui.Send(tui.SessionChangedMsg{Identity: id, Err: err})
}

func (a *App) revokeClipboard() {
	if a.clipboard == nil {
		return
	}
	revoked, err := a.clipboard.Revoke()
	if err != nil {
		a.logger.Warn().Err(err).Str("func", "App.revokeClipboard").Msg("failed to revoke clipboard on exit")
		return
	}
	if revoked {
		a.logger.Info().Str("func", "App.revokeClipboard").Msg("clipboard exposure revoked on exit")
	}
}
