package tui

import (
	"github.com/MKhiriev/go-vaultx/models"
	"github.com/charmbracelet/bubbles/textinput"
)

const (
	fieldTitle = iota
	fieldUsername
	fieldPassword
	fieldURL
	fieldNotes
)

type itemFormModel struct {
	inputs     []textinput.Model
	focus      int
	editing    bool
	itemID     string
	reveal     bool
	submitting bool
	errMsg     string
}

func newItemFormModel(item *models.VaultItem) itemFormModel {
	inputs := make([]textinput.Model, 5)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
	}
	inputs[fieldTitle].Placeholder = "GitHub"
	inputs[fieldURL].Placeholder = "https://"
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '*'
	inputs[fieldTitle].Focus()

	m := itemFormModel{inputs: inputs}
	if item == nil {
		return m
	}

	m.editing = true
	m.itemID = item.ID
	m.inputs[fieldTitle].SetValue(item.Title)
	m.inputs[fieldUsername].SetValue(item.Username)
	m.inputs[fieldPassword].SetValue(item.Password)
	m.inputs[fieldURL].SetValue(item.URL)
	m.inputs[fieldNotes].SetValue(item.Notes)
	return m
}

func (m itemFormModel) toDraft() models.VaultItemDraft {
	return models.VaultItemDraft{
		Title:    m.inputs[fieldTitle].Value(),
		Username: m.inputs[fieldUsername].Value(),
		Password: m.inputs[fieldPassword].Value(),
		URL:      m.inputs[fieldURL].Value(),
		Notes:    m.inputs[fieldNotes].Value(),
	}
}

// toPatch overwrites every field, the ID of the edited item is kept.
func (m itemFormModel) toPatch() models.VaultItemPatch {
	return models.PatchFromItem(m.toDraft().ToItem(m.itemID))
}

func (m *itemFormModel) setPassword(password string) {
	m.inputs[fieldPassword].SetValue(password)
	m.inputs[fieldPassword].CursorEnd()
}

func (m *itemFormModel) toggleReveal() {
	m.reveal = !m.reveal
	if m.reveal {
		m.inputs[fieldPassword].EchoMode = textinput.EchoNormal
	} else {
		m.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	}
}

func (m itemFormModel) View() string {
	title := "НОВАЯ ЗАПИСЬ"
	if m.editing {
		title = "ИЗМЕНЕНИЕ: " + fitText(m.inputs[fieldTitle].Value(), 30)
	}

	out := "Название : [" + m.inputs[fieldTitle].View() + "]\n"
	out += "Логин    : [" + m.inputs[fieldUsername].View() + "]\n"
	out += "Пароль   : [" + m.inputs[fieldPassword].View() + "]\n"
	out += "URL      : [" + m.inputs[fieldURL].View() + "]\n"
	out += "Заметки  : [" + m.inputs[fieldNotes].View() + "]\n"
	if m.submitting {
		out += "\nСохранение..."
	}
	if m.errMsg != "" {
		out += "\n" + errorStyle.Render("Ошибка: "+m.errMsg)
	}

	return renderPage(title, out, "enter: сохранить │ tab: след. поле │ ctrl+g: сгенерировать пароль │ ctrl+r: показать пароль │ esc: отмена")
}
