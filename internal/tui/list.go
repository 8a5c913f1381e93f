package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-vaultx/models"
	"github.com/charmbracelet/bubbles/textinput"
)

type listModel struct {
	items     []models.VaultItem
	total     int
	idx       int
	search    textinput.Model
	searching bool
}

func newListModel() listModel {
	search := textinput.New()
	search.Placeholder = "поиск по названию, логину, url"
	search.Prompt = "/ "
	search.Width = 40
	return listModel{search: search}
}

func (m listModel) current() (models.VaultItem, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return models.VaultItem{}, false
	}
	return m.items[m.idx], true
}

func (m listModel) query() string {
	return m.search.Value()
}

// setItems replaces the visible items and keeps the cursor in range.
func (m *listModel) setItems(items []models.VaultItem, total int) {
	m.items = items
	m.total = total
	if m.idx >= len(m.items) {
		m.idx = len(m.items) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m listModel) View(user string) string {
	var b strings.Builder

	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	switch {
	case m.total == 0:
		b.WriteString("Записей нет. Нажмите n, чтобы добавить первую.\n")
	case len(m.items) == 0:
		b.WriteString("Ничего не найдено\n")
	default:
		b.WriteString("  #   │ Название                 │ Логин                │ URL\n")
		b.WriteString("──────┼──────────────────────────┼──────────────────────┼────────────────\n")
		for i, item := range m.items {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf(
				"%s %-3d │ %-24s │ %-20s │ %s\n",
				cursor,
				i+1,
				fitText(item.Title, 24),
				fitText(item.Username, 20),
				fitText(valueOrDash(item.URL), 30),
			))
		}
		if len(m.items) != m.total {
			b.WriteString(fmt.Sprintf("\nНайдено %d из %d\n", len(m.items), m.total))
		}
	}

	hotKeys := "/: поиск │ n: новая │ enter: открыть │ e: изм. │ d: уд. │ c: копир. пароль │ u: копир. логин │ x: очистить буфер │ l: выйти из аккаунта │ q: выход"
	if m.searching {
		hotKeys = "enter: к списку │ esc: сбросить поиск │ ↑/↓: навигация"
	}

	return renderPage("ХРАНИЛИЩЕ: "+user, strings.TrimRight(b.String(), "\n"), hotKeys)
}
