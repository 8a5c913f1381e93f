package tui

import (
	"strings"

	"github.com/MKhiriev/go-vaultx/models"
	"github.com/charmbracelet/bubbles/textinput"
)

type loginModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func newLoginModel() loginModel {
	inputs := make([]textinput.Model, 2)

	inputs[0] = textinput.New()
	inputs[0].Placeholder = "email"
	inputs[0].Width = 40
	inputs[0].Focus()

	inputs[1] = textinput.New()
	inputs[1].Placeholder = "password"
	inputs[1].EchoMode = textinput.EchoPassword
	inputs[1].EchoCharacter = '*'
	inputs[1].Width = 40

	return loginModel{inputs: inputs}
}

func (m loginModel) toUser() models.User {
	return models.User{
		Email:    strings.TrimSpace(m.inputs[0].Value()),
		Password: m.inputs[1].Value(),
	}
}

func (m loginModel) View() string {
	out := "Email  : [" + m.inputs[0].View() + "]\n"
	out += "Пароль : [" + m.inputs[1].View() + "]\n"
	if m.submitting {
		out += "\nВход..."
	}
	return renderPage("ВХОД", out, "enter: войти │ tab: след. поле │ esc: назад")
}

type registerModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func newRegisterModel() registerModel {
	fields := make([]textinput.Model, 5)

	fields[0] = textinput.New()
	fields[0].Placeholder = "name"
	fields[0].Width = 40
	fields[0].Focus()

	fields[1] = textinput.New()
	fields[1].Placeholder = "phone"
	fields[1].CharLimit = 20
	fields[1].Width = 40

	fields[2] = textinput.New()
	fields[2].Placeholder = "email"
	fields[2].Width = 40

	fields[3] = textinput.New()
	fields[3].Placeholder = "password"
	fields[3].EchoMode = textinput.EchoPassword
	fields[3].EchoCharacter = '*'
	fields[3].Width = 40

	fields[4] = textinput.New()
	fields[4].Placeholder = "repeat password"
	fields[4].EchoMode = textinput.EchoPassword
	fields[4].EchoCharacter = '*'
	fields[4].Width = 40

	return registerModel{inputs: fields}
}

func (m registerModel) passwordsMatch() bool {
	return m.inputs[3].Value() == m.inputs[4].Value()
}

func (m registerModel) toUser() models.User {
	return models.User{
		Name:     strings.TrimSpace(m.inputs[0].Value()),
		Phone:    strings.TrimSpace(m.inputs[1].Value()),
		Email:    strings.TrimSpace(m.inputs[2].Value()),
		Password: m.inputs[3].Value(),
	}
}

func (m registerModel) View() string {
	out := "Имя             : [" + m.inputs[0].View() + "]\n"
	out += "Телефон         : [" + m.inputs[1].View() + "]\n"
	out += "Email           : [" + m.inputs[2].View() + "]\n"
	out += "Пароль          : [" + m.inputs[3].View() + "]\n"
	out += "Повтор пароля   : [" + m.inputs[4].View() + "]\n"
	if m.submitting {
		out += "\nРегистрация..."
	}
	return renderPage("РЕГИСТРАЦИЯ", out, "enter: зарегистрироваться │ tab: след. поле │ esc: назад")
}

// shiftFocus moves the focus of inputs by delta with wrap-around and returns
// the new index.
func shiftFocus(inputs []textinput.Model, focus, delta int) int {
	inputs[focus].Blur()
	focus = (focus + delta + len(inputs)) % len(inputs)
	inputs[focus].Focus()
	return focus
}
