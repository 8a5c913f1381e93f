package tui

import (
	"github.com/MKhiriev/go-vaultx/models"
	"github.com/charmbracelet/bubbles/spinner"
)

type loadingModel struct {
	spinner  spinner.Model
	identity models.Identity
}

func newLoadingModel() loadingModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return loadingModel{spinner: s}
}

func (m loadingModel) View() string {
	text := "Восстановление сессии..."
	if !m.identity.IsNone() {
		text = "Загрузка хранилища " + m.identity.String() + "..."
	}
	return renderPage("ЗАГРУЗКА", m.spinner.View()+" "+text, "")
}
