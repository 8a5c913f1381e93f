package tui

import (
	"strings"

	"github.com/MKhiriev/go-vaultx/models"
)

type detailModel struct {
	item   models.VaultItem
	reveal bool
}

func (m detailModel) View() string {
	var b strings.Builder

	b.WriteString("Название : " + m.item.Title + "\n")
	b.WriteString("Логин    : " + m.item.Username + "\n")
	b.WriteString("Пароль   : " + maskSecret(m.item.Password, m.reveal))
	if m.reveal {
		b.WriteString("  [пробел: скрыть]\n")
	} else {
		b.WriteString("  [пробел: показать]\n")
	}
	b.WriteString("URL      : " + valueOrDash(m.item.URL) + "\n\n")

	b.WriteString("[ ЗАМЕТКИ ]\n")
	if strings.TrimSpace(m.item.Notes) != "" {
		b.WriteString(m.item.Notes + "\n")
	} else {
		b.WriteString("(пусто)\n")
	}

	return renderPage(
		"ЗАПИСЬ: "+fitText(m.item.Title, 40),
		strings.TrimRight(b.String(), "\n"),
		"e: изменить │ d: удалить │ c: копир. пароль │ u: копир. логин │ x: очистить буфер │ пробел: показать │ esc: назад",
	)
}
