// Package tui is the terminal user interface of the vault client built on
// Bubble Tea.
//
// The UI never owns vault data. It reads the bound session from the session
// guard on every render-relevant change and sends every mutation through the
// vault item store of that session. Identity changes are pushed in from the
// outside with [SessionLoadingMsg] and [SessionChangedMsg].
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-vaultx/internal/logger"
	"github.com/MKhiriev/go-vaultx/internal/service"
	"github.com/MKhiriev/go-vaultx/models"
	tea "github.com/charmbracelet/bubbletea"
)

// IdentityService logs users in and out. It is implemented by
// *identity.Provider.
type IdentityService interface {
	Restore(ctx context.Context) (models.Identity, error)
	Login(ctx context.Context, user models.User) (models.CurrentUser, error)
	Signup(ctx context.Context, user models.User) (models.CurrentUser, error)
	Logout(ctx context.Context) error
}

// SessionSource exposes the session guard to the UI.
type SessionSource interface {
	Status() service.Status
	Session() (*service.Session, error)
	OnReset(fn func())
}

// ClipboardService copies secrets with a countdown. It is implemented by
// *clipboard.Guard.
type ClipboardService interface {
	Expose(secret string) error
	ClearNow() error
	Remaining() int
}

// Dependencies are the collaborators of the UI.
type Dependencies struct {
	Identity  IdentityService
	Session   SessionSource
	Clipboard ClipboardService
	Passwords service.PasswordService
	Policy    models.PasswordPolicy
	BuildInfo models.AppBuildInfo
}

type TUI struct {
	program *tea.Program
	logger  *logger.Logger
}

// New builds the UI program and registers a reset hook on the session guard
// that clears every form when a session is wiped. Send must not be called
// before Run.
func New(ctx context.Context, deps Dependencies, log *logger.Logger) *TUI {
	t := &TUI{logger: log}
	t.program = tea.NewProgram(newAppModel(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))

	deps.Session.OnReset(func() {
		t.program.Send(formsResetMsg{})
	})

	return t
}

// Run blocks until the user quits or ctx is cancelled.
func (t *TUI) Run() error {
	_, err := t.program.Run()
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	t.logger.Err(err).Str("func", "TUI.Run").Msg("ui stopped with error")
	return err
}

// Send delivers msg to the running program. It returns immediately once the
// program has exited.
func (t *TUI) Send(msg tea.Msg) {
	t.program.Send(msg)
}
