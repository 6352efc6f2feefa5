// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-mess-manager/internal/service"
	"github.com/MKhiriev/go-mess-manager/models"
)

// RegisterModel is the Bubble Tea model for the registration screen. It
// renders four text inputs (display name, email, password, password
// confirmation) and a role selector, and dispatches an async registration
// command on form submission. Registration issues a credential, so on
// success the flow finishes directly instead of bouncing through the login
// form.
type RegisterModel struct {
	ctx      context.Context
	sessions service.ClientSessionService

	inputs     []textinput.Model
	focus      int
	roles      []models.Role
	roleIdx    int
	submitting bool
	errMsg     string
}

// NewRegisterModel creates a [RegisterModel] with pre-configured inputs.
// The name field receives focus immediately; the password fields use masked
// echo.
func NewRegisterModel(ctx context.Context, sessions service.ClientSessionService) *RegisterModel {
	fields := make([]textinput.Model, 4)

	fields[0] = textinput.New()
	fields[0].Placeholder = "name"
	fields[0].Width = 40
	fields[0].Focus()

	fields[1] = textinput.New()
	fields[1].Placeholder = "email"
	fields[1].CharLimit = 64
	fields[1].Width = 40

	fields[2] = textinput.New()
	fields[2].Placeholder = "password (min 8 characters)"
	fields[2].EchoMode = textinput.EchoPassword
	fields[2].EchoCharacter = '*'
	fields[2].Width = 40

	fields[3] = textinput.New()
	fields[3].Placeholder = "repeat password"
	fields[3].EchoMode = textinput.EchoPassword
	fields[3].EchoCharacter = '*'
	fields[3].Width = 40

	return &RegisterModel{
		ctx:      ctx,
		sessions: sessions,
		inputs:   fields,
		roles:    []models.Role{models.RoleStudent, models.RoleMessStaff, models.RoleAdmin},
	}
}

// Init implements [tea.Model]. Starts the cursor-blink animation for the
// active input.
func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - [RegisterResult] — clears submitting state; on error, populates errMsg.
//   - esc              — cancels and navigates back to the menu.
//   - tab / shift+tab  — move focus between inputs.
//   - left / right     — cycle the role selector.
//   - enter            — validates inputs (all required; passwords must
//     match) and dispatches the async registration command.
//
// All other key events are forwarded to the focused input widget.
func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(RegisterResult); ok {
		m.submitting = false
		if result.Err != nil {
			m.errMsg = humanizeServerUnavailableError(result.Err)
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.submitting = false
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
		case "tab":
			m.focusNext()
			return m, nil
		case "shift+tab":
			m.focusPrev()
			return m, nil
		case "left":
			m.roleIdx = (m.roleIdx - 1 + len(m.roles)) % len(m.roles)
			return m, nil
		case "right":
			m.roleIdx = (m.roleIdx + 1) % len(m.roles)
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}

			name := strings.TrimSpace(m.inputs[0].Value())
			email := strings.TrimSpace(m.inputs[1].Value())
			pass := m.inputs[2].Value()
			repeat := m.inputs[3].Value()

			switch {
			case name == "" || email == "" || pass == "":
				m.errMsg = "Name, email and password are required"
				return m, nil
			case len(pass) < 8:
				m.errMsg = "Password must be at least 8 characters"
				return m, nil
			case pass != repeat:
				m.errMsg = "Passwords do not match"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdRegister(name, email, pass)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model]. Renders the registration form with the role
// selector and an optional error message.
func (m *RegisterModel) View() string {
	var b strings.Builder
	b.WriteString("Field      │ Value\n")
	b.WriteString("───────────┼────────────────────────────────────────────\n")
	b.WriteString("Name       │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Email      │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")
	b.WriteString("Password   │ [")
	b.WriteString(m.inputs[2].View())
	b.WriteString("]\n")
	b.WriteString("Repeat     │ [")
	b.WriteString(m.inputs[3].View())
	b.WriteString("]\n")
	b.WriteString("Role       │ ← ")
	b.WriteString(string(m.roles[m.roleIdx]))
	b.WriteString(" →\n")

	if m.submitting {
		b.WriteString("\n[Registering...]\n")
	} else {
		b.WriteString("\n[Register]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\nError: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}

	return renderPage("REGISTER", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ ←/→: role │ enter: submit")
}

func (m *RegisterModel) cmdRegister(name, email, pass string) tea.Cmd {
	ctx := m.ctx
	sessions := m.sessions
	role := m.roles[m.roleIdx]

	return func() tea.Msg {
		credential, err := sessions.Register(ctx, models.RegisterRequest{
			Email:    email,
			Password: pass,
			Name:     name,
			Role:     role,
		})

		return RegisterResult{
			Email:      email,
			Credential: credential,
			Err:        err,
		}
	}
}

func (m *RegisterModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *RegisterModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
