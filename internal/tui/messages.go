package tui

import (
	"github.com/MKhiriev/go-vaultx/models"
)

// SessionLoadingMsg tells the UI that the vault of Identity started loading.
type SessionLoadingMsg struct {
	Identity models.Identity
}

// SessionChangedMsg tells the UI that an identity change was applied to the
// session guard. Err is the outcome of the activation.
type SessionChangedMsg struct {
	Identity models.Identity
	Err      error
}

// formsResetMsg is sent by the session guard reset hook.
type formsResetMsg struct{}

type restoreDoneMsg struct {
	identity models.Identity
	err      error
}

type authDoneMsg struct {
	user models.CurrentUser
	err  error
}

type loggedOutMsg struct {
	err error
}

type itemSavedMsg struct {
	item models.VaultItem
	err  error
}

type itemDeletedMsg struct {
	err error
}

type copiedMsg struct {
	label string
	err   error
}

type generatedMsg struct {
	password string
	err      error
}

type clipboardTickMsg struct {
	seq int
}

type clipboardClearedMsg struct {
	err error
}

type clearStatusMsg struct {
	seq int
}
