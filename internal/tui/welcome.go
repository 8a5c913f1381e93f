package tui

import "strings"

type welcomeEntry struct {
	label  string
	target screen
}

// welcomeModel is the menu shown while no identity is signed in.
type welcomeModel struct {
	entries []welcomeEntry
	idx     int
}

func newWelcomeModel() welcomeModel {
	return welcomeModel{entries: []welcomeEntry{
		{label: "Войти", target: screenLogin},
		{label: "Зарегистрироваться", target: screenRegister},
	}}
}

func (m *welcomeModel) move(delta int) {
	m.idx = min(max(m.idx+delta, 0), len(m.entries)-1)
}

func (m welcomeModel) selected() screen {
	return m.entries[m.idx].target
}

func (m welcomeModel) View() string {
	var b strings.Builder
	b.WriteString("Хранилище паролей VaultX\n\nВыберите действие:\n\n")
	for i, e := range m.entries {
		if i == m.idx {
			b.WriteString(selectedStyle.Render("> " + e.label))
		} else {
			b.WriteString("  " + e.label)
		}
		b.WriteString("\n")
	}
	return renderPage("VAULTX", b.String(), "enter: выбрать │ ↑/↓: навигация │ v: версия │ q: выход")
}
