package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-mess-manager/models"
)

// NavigateTo switches the root router to another page. An optional Payload
// is delivered to the target page right after the switch.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult is produced by the async login command.
type LoginResult struct {
	Credential models.Credential
	Err        error
}

// RegisterResult is produced by the async registration command.
type RegisterResult struct {
	Email      string
	Credential models.Credential
	Err        error
}

// RegisterSuccessNotice is shown on the menu page after registration.
type RegisterSuccessNotice struct {
	Email string
}

type menuLoadedMsg struct {
	days []models.Menu
	err  error
}

type suggestionsLoadedMsg struct {
	items []models.MenuSuggestion
	err   error
}

type decisionDoneMsg struct {
	accepted bool
	dates    models.AcceptedRange
	err      error
}

type feedbackSavedMsg struct {
	err error
}

type recordSavedMsg struct {
	waste bool
	err   error
}

type sessionCheckedMsg struct {
	credential models.Credential
	state      models.SessionState
	err        error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
