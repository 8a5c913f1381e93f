package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-vaultx/internal/service"
	"github.com/MKhiriev/go-vaultx/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenLoading screen = iota
	screenWelcome
	screenLogin
	screenRegister
	screenList
	screenDetail
	screenForm
)

const (
	clipboardPollInterval = time.Second
	statusTTL             = 3 * time.Second
)

const regeneratedNotice = "Ключ хранилища был повреждён и создан заново. Ранее сохранённые записи восстановить нельзя."

type appModel struct {
	ctx       context.Context
	identity  IdentityService
	session   SessionSource
	clipboard ClipboardService
	passwords service.PasswordService
	policy    models.PasswordPolicy
	buildInfo models.AppBuildInfo

	currentScreen screen

	welcome  welcomeModel
	login    loginModel
	register registerModel
	loading  loadingModel
	list     listModel
	detail   detailModel
	form     itemFormModel

	status    string
	statusErr bool
	statusSeq int
	notice    string

	// clipSeq invalidates countdown ticks of earlier exposures.
	clipSeq       int
	clipRemaining int

	showError     bool
	errorOverlay  errorOverlayModel
	showConfirm   bool
	confirm       confirmModel
	pendingDelete string
	showBuildInfo bool
}

func newAppModel(ctx context.Context, deps Dependencies) appModel {
	return appModel{
		ctx:           ctx,
		identity:      deps.Identity,
		session:       deps.Session,
		clipboard:     deps.Clipboard,
		passwords:     deps.Passwords,
		policy:        deps.Policy,
		buildInfo:     deps.BuildInfo,
		currentScreen: screenLoading,
		welcome:       newWelcomeModel(),
		login:         newLoginModel(),
		register:      newRegisterModel(),
		loading:       newLoadingModel(),
		list:          newListModel(),
		form:          newItemFormModel(nil),
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.cmdRestore(), m.loading.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			if key.Matches(msg, keys.yes) {
				m.showConfirm = false
				if m.pendingDelete == "" {
					return m, nil
				}
				return m, m.cmdDeleteItem(m.pendingDelete)
			}
			if key.Matches(msg, keys.no) || key.Matches(msg, keys.esc) {
				m.showConfirm = false
				m.pendingDelete = ""
			}
			return m, nil
		}
		if m.showBuildInfo {
			if key.Matches(msg, keys.esc) || key.Matches(msg, keys.version) {
				m.showBuildInfo = false
			}
			return m, nil
		}
	case SessionLoadingMsg:
		m.loading.identity = msg.Identity
		m.currentScreen = screenLoading
		return m, m.loading.spinner.Tick
	case SessionChangedMsg:
		if msg.Err != nil && !errors.Is(msg.Err, service.ErrSessionSuperseded) {
			m.showErrorf("Не удалось открыть хранилище: " + humanizeError(msg.Err))
		}
		return m.syncSession()
	case formsResetMsg:
		m.resetForms()
		return m, nil
	case restoreDoneMsg:
		if msg.err != nil {
			m.showErrorf(humanizeError(msg.err))
		}
		return m.syncSession()
	case authDoneMsg:
		m.login.submitting = false
		m.register.submitting = false
		if msg.err != nil {
			m.showErrorf(humanizeError(msg.err))
			return m, nil
		}
		m.login = newLoginModel()
		m.register = newRegisterModel()
		return m.syncSession()
	case loggedOutMsg:
		if msg.err != nil {
			m.showErrorf(humanizeError(msg.err))
		}
		return m.syncSession()
	case itemSavedMsg:
		m.form.submitting = false
		if msg.err != nil {
			m.form.errMsg = humanizeError(msg.err)
			return m, nil
		}
		editing := m.form.editing
		m.form = newItemFormModel(nil)
		m.refreshList()
		if editing {
			m.detail = detailModel{item: msg.item}
			m.currentScreen = screenDetail
		} else {
			m.currentScreen = screenList
		}
		return m, m.setStatus("Запись сохранена", false)
	case itemDeletedMsg:
		m.pendingDelete = ""
		if msg.err != nil {
			return m, m.setStatus(humanizeError(msg.err), true)
		}
		m.detail = detailModel{}
		m.currentScreen = screenList
		m.refreshList()
		return m, m.setStatus("Запись удалена", false)
	case copiedMsg:
		if msg.err != nil {
			return m, m.setStatus(humanizeError(msg.err), true)
		}
		return m.startClipboardCountdown(msg.label + " скопирован в буфер обмена")
	case generatedMsg:
		if msg.err != nil {
			m.form.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.form.errMsg = ""
		m.form.setPassword(msg.password)
		return m.startClipboardCountdown("Пароль сгенерирован и скопирован в буфер обмена")
	case clipboardTickMsg:
		if msg.seq != m.clipSeq {
			return m, nil
		}
		m.clipRemaining = m.clipboard.Remaining()
		if m.clipRemaining > 0 {
			return m, cmdClipboardTick(msg.seq)
		}
		return m, nil
	case clipboardClearedMsg:
		if msg.err != nil {
			return m, m.setStatus(humanizeError(msg.err), true)
		}
		m.clipSeq++
		m.clipRemaining = 0
		return m, m.setStatus("Буфер обмена очищен", false)
	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil
	case spinner.TickMsg:
		if m.currentScreen != screenLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.loading.spinner, cmd = m.loading.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenWelcome:
		return m.updateWelcome(msg)
	case screenLogin:
		return m.updateLogin(msg)
	case screenRegister:
		return m.updateRegister(msg)
	case screenList:
		return m.updateList(msg)
	case screenDetail:
		return m.updateDetail(msg)
	case screenForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	if m.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo))
	}

	var body string
	switch m.currentScreen {
	case screenLoading:
		body = m.loading.View()
	case screenWelcome:
		body = m.welcome.View()
	case screenLogin:
		body = m.login.View()
	case screenRegister:
		body = m.register.View()
	case screenList:
		body = m.list.View(m.session.Status().Identity.String())
	case screenDetail:
		body = m.detail.View()
	case screenForm:
		body = m.form.View()
	}

	if footer := m.statusView(); footer != "" && m.currentScreen >= screenList {
		body += "\n\n" + footer
	}
	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m appModel) statusView() string {
	var lines []string
	if m.notice != "" {
		lines = append(lines, noticeStyle.Render("⚠ "+m.notice))
	}
	if m.status != "" {
		if m.statusErr {
			lines = append(lines, errorStyle.Render("Ошибка: "+m.status))
		} else {
			lines = append(lines, m.status)
		}
	}
	if m.clipRemaining > 0 {
		lines = append(lines, fmt.Sprintf("Буфер обмена будет очищен через %d с (x: очистить сейчас)", m.clipRemaining))
	}
	return strings.Join(lines, "\n")
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

// setStatus shows text on the status line and schedules its removal.
func (m *appModel) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	return cmdClearStatus(m.statusSeq)
}

// syncSession moves the UI to the screen that matches the session guard.
func (m appModel) syncSession() (tea.Model, tea.Cmd) {
	status := m.session.Status()

	switch status.State {
	case service.StateLoading:
		m.loading.identity = status.Identity
		m.currentScreen = screenLoading
		return m, m.loading.spinner.Tick
	case service.StateBound:
		m.notice = ""
		if status.KeyRegenerated {
			m.notice = regeneratedNotice
		}
		if m.currentScreen < screenList {
			m.currentScreen = screenList
		}
		m.refreshList()
		return m, nil
	default:
		m.notice = ""
		m.resetForms()
		if m.currentScreen != screenLogin && m.currentScreen != screenRegister {
			m.currentScreen = screenWelcome
		}
		return m, nil
	}
}

// resetForms drops every buffer that may hold vault data.
func (m *appModel) resetForms() {
	m.form = newItemFormModel(nil)
	m.detail = detailModel{}
	m.list = newListModel()
	m.showConfirm = false
	m.pendingDelete = ""
	m.clipSeq++
	m.clipRemaining = 0
	m.status = ""
	m.statusErr = false
	if m.currentScreen > screenList {
		m.currentScreen = screenList
	}
}

func (m *appModel) refreshList() {
	items, err := m.vault()
	if err != nil {
		m.list.setItems(nil, 0)
		return
	}
	m.list.setItems(items.Search(m.list.query()), len(items.Items()))
}

func (m appModel) vault() (service.VaultItemStore, error) {
	session, err := m.session.Session()
	if err != nil {
		return nil, err
	}
	return session.Items(), nil
}

func (m appModel) startClipboardCountdown(status string) (tea.Model, tea.Cmd) {
	m.clipSeq++
	m.clipRemaining = m.clipboard.Remaining()
	statusCmd := m.setStatus(status, false)
	return m, tea.Batch(statusCmd, cmdClipboardTick(m.clipSeq))
}

func (m appModel) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		m.welcome.move(-1)
	case key.Matches(keyMsg, keys.down):
		m.welcome.move(1)
	case key.Matches(keyMsg, keys.enter):
		m.currentScreen = m.welcome.selected()
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.version):
		m.showBuildInfo = true
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.login = newLoginModel()
			m.currentScreen = screenWelcome
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.login.focus = shiftFocus(m.login.inputs, m.login.focus, 1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.login.focus = shiftFocus(m.login.inputs, m.login.focus, -1)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.login.submitting {
				return m, nil
			}
			m.login.submitting = true
			return m, m.cmdLogin(m.login.toUser())
		}
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.register = newRegisterModel()
			m.currentScreen = screenWelcome
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.register.focus = shiftFocus(m.register.inputs, m.register.focus, 1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.register.focus = shiftFocus(m.register.inputs, m.register.focus, -1)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.register.submitting {
				return m, nil
			}
			if !m.register.passwordsMatch() {
				m.showErrorf("Пароли не совпадают")
				return m, nil
			}
			m.register.submitting = true
			return m, m.cmdSignup(m.register.toUser())
		}
	}

	var cmd tea.Cmd
	m.register.inputs[m.register.focus], cmd = m.register.inputs[m.register.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.list.searching {
		return m.updateSearch(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.list.idx > 0 {
			m.list.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.list.idx < len(m.list.items)-1 {
			m.list.idx++
		}
	case key.Matches(keyMsg, keys.search):
		m.list.searching = true
		m.list.search.Focus()
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.newItem):
		m.form = newItemFormModel(nil)
		m.currentScreen = screenForm
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.clearClip):
		return m, m.cmdClearClipboard()
	case key.Matches(keyMsg, keys.logout):
		return m, m.cmdLogout()
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	}

	item, ok := m.list.current()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.enter):
		m.detail = detailModel{item: item}
		m.currentScreen = screenDetail
	case key.Matches(keyMsg, keys.edit):
		m.form = newItemFormModel(&item)
		m.currentScreen = screenForm
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.delete):
		m.askDelete(item)
	case key.Matches(keyMsg, keys.copy):
		return m, m.cmdCopy(item.Password, "Пароль")
	case key.Matches(keyMsg, keys.copyUser):
		return m, m.cmdCopy(item.Username, "Логин")
	}

	return m, nil
}

// updateSearch filters the list on every keystroke while the search input
// has focus.
func (m appModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.list.search.SetValue("")
			m.list.search.Blur()
			m.list.searching = false
			m.refreshList()
			return m, nil
		case tea.KeyEnter:
			m.list.search.Blur()
			m.list.searching = false
			return m, nil
		case tea.KeyUp:
			if m.list.idx > 0 {
				m.list.idx--
			}
			return m, nil
		case tea.KeyDown:
			if m.list.idx < len(m.list.items)-1 {
				m.list.idx++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list.search, cmd = m.list.search.Update(msg)
	m.refreshList()
	return m, cmd
}

func (m appModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	item := m.detail.item
	switch {
	case key.Matches(keyMsg, keys.esc):
		m.detail = detailModel{}
		m.currentScreen = screenList
	case key.Matches(keyMsg, keys.reveal):
		m.detail.reveal = !m.detail.reveal
	case key.Matches(keyMsg, keys.edit):
		m.form = newItemFormModel(&item)
		m.currentScreen = screenForm
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.delete):
		m.askDelete(item)
	case key.Matches(keyMsg, keys.copy):
		return m, m.cmdCopy(item.Password, "Пароль")
	case key.Matches(keyMsg, keys.copyUser):
		return m, m.cmdCopy(item.Username, "Логин")
	case key.Matches(keyMsg, keys.clearClip):
		return m, m.cmdClearClipboard()
	}

	return m, nil
}

func (m appModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			if m.form.editing {
				m.currentScreen = screenDetail
			} else {
				m.currentScreen = screenList
			}
			m.form = newItemFormModel(nil)
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.form.focus = shiftFocus(m.form.inputs, m.form.focus, 1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.form.focus = shiftFocus(m.form.inputs, m.form.focus, -1)
			return m, nil
		case key.Matches(keyMsg, keys.generate):
			return m, m.cmdGenerate()
		case key.Matches(keyMsg, keys.revealPwd):
			m.form.toggleReveal()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.form.submitting {
				return m, nil
			}
			m.form.submitting = true
			m.form.errMsg = ""
			if m.form.editing {
				return m, m.cmdUpdateItem(m.form.itemID, m.form.toPatch())
			}
			return m, m.cmdAddItem(m.form.toDraft())
		}
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m *appModel) askDelete(item models.VaultItem) {
	m.showConfirm = true
	m.confirm.title = item.Title
	m.pendingDelete = item.ID
}

func (m appModel) cmdRestore() tea.Cmd {
	ctx := m.ctx
	provider := m.identity
	return func() tea.Msg {
		id, err := provider.Restore(ctx)
		return restoreDoneMsg{identity: id, err: err}
	}
}

func (m appModel) cmdLogin(user models.User) tea.Cmd {
	ctx := m.ctx
	provider := m.identity
	return func() tea.Msg {
		current, err := provider.Login(ctx, user)
		return authDoneMsg{user: current, err: err}
	}
}

func (m appModel) cmdSignup(user models.User) tea.Cmd {
	ctx := m.ctx
	provider := m.identity
	return func() tea.Msg {
		current, err := provider.Signup(ctx, user)
		return authDoneMsg{user: current, err: err}
	}
}

func (m appModel) cmdLogout() tea.Cmd {
	ctx := m.ctx
	provider := m.identity
	return func() tea.Msg {
		return loggedOutMsg{err: provider.Logout(ctx)}
	}
}

func (m appModel) cmdAddItem(draft models.VaultItemDraft) tea.Cmd {
	ctx := m.ctx
	items, err := m.vault()
	return func() tea.Msg {
		if err != nil {
			return itemSavedMsg{err: err}
		}
		item, err := items.Add(ctx, draft)
		return itemSavedMsg{item: item, err: err}
	}
}

func (m appModel) cmdUpdateItem(id string, patch models.VaultItemPatch) tea.Cmd {
	ctx := m.ctx
	items, err := m.vault()
	return func() tea.Msg {
		if err != nil {
			return itemSavedMsg{err: err}
		}
		item, err := items.Update(ctx, id, patch)
		return itemSavedMsg{item: item, err: err}
	}
}

func (m appModel) cmdDeleteItem(id string) tea.Cmd {
	ctx := m.ctx
	items, err := m.vault()
	return func() tea.Msg {
		if err != nil {
			return itemDeletedMsg{err: err}
		}
		return itemDeletedMsg{err: items.Remove(ctx, id)}
	}
}

func (m appModel) cmdCopy(secret, label string) tea.Cmd {
	clip := m.clipboard
	return func() tea.Msg {
		return copiedMsg{label: label, err: clip.Expose(secret)}
	}
}

func (m appModel) cmdClearClipboard() tea.Cmd {
	clip := m.clipboard
	return func() tea.Msg {
		return clipboardClearedMsg{err: clip.ClearNow()}
	}
}

func (m appModel) cmdGenerate() tea.Cmd {
	passwords := m.passwords
	policy := m.policy
	return func() tea.Msg {
		password, err := passwords.GenerateAndExpose(policy)
		return generatedMsg{password: password, err: err}
	}
}

func cmdClipboardTick(seq int) tea.Cmd {
	return tea.Tick(clipboardPollInterval, func(time.Time) tea.Msg {
		return clipboardTickMsg{seq: seq}
	})
}

func cmdClearStatus(seq int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
