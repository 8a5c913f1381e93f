package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-vaultx/internal/config"
	"github.com/MKhiriev/go-vaultx/internal/identity"
	"github.com/MKhiriev/go-vaultx/internal/logger"
	"github.com/MKhiriev/go-vaultx/internal/service"
	"github.com/MKhiriev/go-vaultx/internal/tui"
	"github.com/MKhiriev/go-vaultx/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdentitySource struct {
	listeners []identity.ChangeFunc
}

func (f *fakeIdentitySource) OnChange(fn identity.ChangeFunc) {
	f.listeners = append(f.listeners, fn)
}

func (f *fakeIdentitySource) change(id models.Identity) {
	for _, fn := range f.listeners {
		fn(id)
	}
}

type fakeBinder struct {
	mu    sync.Mutex
	calls []models.Identity
	err   error
}

func (f *fakeBinder) Activate(_ context.Context, id models.Identity) (*service.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, id)
	return nil, f.err
}

type fakeUI struct {
	mu     sync.Mutex
	sent   []tea.Msg
	runErr error
	onRun  func()
}

func (f *fakeUI) Run() error {
	if f.onRun != nil {
		f.onRun()
	}
	return f.runErr
}

func (f *fakeUI) Send(msg tea.Msg) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
}

type fakeRevoker struct {
	calls int
}

func (f *fakeRevoker) Revoke() (bool, error) {
	f.calls++
	return true, nil
}

type fakeJob struct {
	started  bool
	stopped  bool
	interval time.Duration
}

func (f *fakeJob) Start(_ context.Context, interval time.Duration) {
	f.started = true
	f.interval = interval
}

func (f *fakeJob) Stop() { f.stopped = true }

func newTestApp(t *testing.T) (*App, *fakeIdentitySource, *fakeBinder, *fakeUI, *fakeRevoker, *fakeJob) {
	t.Helper()
	src := &fakeIdentitySource{}
	binder := &fakeBinder{}
	ui := &fakeUI{}
	revoker := &fakeRevoker{}
	job := &fakeJob{}

	app, err := NewApp(context.Background(), src, binder, revoker, job, ui, config.ClientWorkers{IdentityCheckInterval: time.Minute}, logger.Nop())
	require.NoError(t, err)
	return app, src, binder, ui, revoker, job
}

func TestNewApp_RequiresCollaborators(t *testing.T) {
	_, err := NewApp(context.Background(), nil, &fakeBinder{}, nil, nil, &fakeUI{}, config.ClientWorkers{}, logger.Nop())
	assert.Error(t, err)
}

func TestApp_IdentityChangeActivatesSession(t *testing.T) {
	_, src, binder, ui, _, _ := newTestApp(t)

	src.change("alice")

	assert.Equal(t, []models.Identity{"alice"}, binder.calls)
	assert.Equal(t, []tea.Msg{
		tui.SessionLoadingMsg{Identity: "alice"},
		tui.SessionChangedMsg{Identity: "alice"},
	}, ui.sent)
}

func TestApp_LogoutUnbindsSession(t *testing.T) {
	_, src, binder, ui, _, _ := newTestApp(t)

	src.change("")

	assert.Equal(t, []models.Identity{""}, binder.calls)
	// для выхода экран загрузки не показывается
	assert.Equal(t, []tea.Msg{tui.SessionChangedMsg{Identity: ""}}, ui.sent)
}

func TestApp_ActivationErrorIsForwarded(t *testing.T) {
	_, src, binder, ui, _, _ := newTestApp(t)
	binder.err = errors.New("disk")

	src.change("alice")

	require.Len(t, ui.sent, 2)
	changed, ok := ui.sent[1].(tui.SessionChangedMsg)
	require.True(t, ok)
	assert.EqualError(t, changed.Err, "disk")
}

func TestApp_SupersededActivationIsDropped(t *testing.T) {
	_, src, binder, ui, _, _ := newTestApp(t)
	binder.err = service.ErrSessionSuperseded

	src.change("alice")

	assert.Equal(t, []tea.Msg{tui.SessionLoadingMsg{Identity: "alice"}}, ui.sent)
}

func TestApp_Run(t *testing.T) {
	app, _, _, ui, revoker, job := newTestApp(t)

	var startedBeforeUI bool
	ui.onRun = func() { startedBeforeUI = job.started }
	ui.runErr = errors.New("tty lost")

	err := app.Run()

	assert.EqualError(t, err, "tty lost")
	assert.True(t, startedBeforeUI)
	assert.Equal(t, time.Minute, job.interval)
	assert.True(t, job.stopped)
	assert.Equal(t, 1, revoker.calls)
}
