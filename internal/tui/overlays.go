package tui

import "strings"

// renderDialog draws a boxed dialog shown on top of the current screen.
func renderDialog(heading, body, keys string) string {
	parts := []string{heading}
	if strings.TrimSpace(body) != "" {
		parts = append(parts, body)
	}
	parts = append(parts, helpStyle.Render(keys))
	return overlayBoxStyle.Render(strings.Join(parts, "\n\n"))
}

// errorOverlayModel blocks input until the user dismisses the error.
type errorOverlayModel struct {
	message string
}

func (m errorOverlayModel) View() string {
	return renderDialog(errorStyle.Render("Ошибка"), m.message, "enter / esc: закрыть")
}

// confirmModel asks before a vault item is deleted.
type confirmModel struct {
	title string
}

func (m confirmModel) View() string {
	return renderDialog(
		titleStyle.Render("Удалить \""+m.title+"\"?"),
		"Запись будет удалена без возможности восстановления.",
		"y: да │ n: нет",
	)
}
