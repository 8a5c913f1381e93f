package tui

import (
	"strings"
	"unicode/utf8"
)

const uiDivider = "──────────────────────────────────────────────────────"

const secretMask = "••••••••••"

// renderPage lays out a screen: title, ruled body and the key help footer.
func renderPage(title, data, hotKeys string) string {
	if strings.TrimSpace(data) == "" {
		data = "-"
	}
	rule := "  " + uiDivider

	lines := []string{titleStyle.Render(title), rule, ""}
	for _, line := range strings.Split(data, "\n") {
		lines = append(lines, "  "+line)
	}
	lines = append(lines, "", rule)
	if strings.TrimSpace(hotKeys) != "" {
		lines = append(lines, "  "+helpStyle.Render(hotKeys))
	}
	lines = append(lines, "  "+helpStyle.Render("ctrl+c: выход"))

	return strings.Join(lines, "\n")
}

func valueOrDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

// fitText cuts v to size runes, marking the cut with "...".
func fitText(v string, size int) string {
	if size <= 0 || utf8.RuneCountInString(v) <= size {
		return v
	}
	runes := []rune(v)
	if size <= 3 {
		return string(runes[:size])
	}
	return string(runes[:size-3]) + "..."
}

func maskSecret(value string, reveal bool) string {
	if reveal {
		return value
	}
	if value == "" {
		return ""
	}
	return secretMask
}
