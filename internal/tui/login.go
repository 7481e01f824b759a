// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/flow-bank/internal/app"
	"github.com/MKhiriev/flow-bank/internal/service"
	"github.com/MKhiriev/flow-bank/models"
)

const (
	loginFocusEmail = iota
	loginFocusPassword
	loginFocusRemember
	loginFocusCount
)

// LoginModel is the Bubble Tea model for the sign-in screen. It renders the
// email and password inputs plus a "remember me" toggle and dispatches an
// async login command on submission. A successful login navigates to the
// dashboard.
type LoginModel struct {
	deps *deps

	inputs     []textinput.Model
	remember   bool
	focus      int
	submitting bool
	spinner    spinner.Model
	errMsg     string
	notice     string
}

// NewLoginModel creates a [LoginModel] with pre-configured email and password
// inputs. The password field uses masked echo.
func NewLoginModel(d *deps) *LoginModel {
	emailInput := textinput.New()
	emailInput.Placeholder = "you@example.com"
	emailInput.CharLimit = 254
	emailInput.Width = 40

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return &LoginModel{
		deps:    d,
		inputs:  []textinput.Model{emailInput, passwordInput},
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Init implements [tea.Model]. Starts the cursor-blink animation for the active input.
func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) enter(_ *models.Session, notice string) tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.remember = false
	m.submitting = false
	m.errMsg = ""
	m.notice = notice
	m.setFocus(loginFocusEmail)
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - loginResultMsg: clears submitting state; on error, populates errMsg,
//     on success navigates to the dashboard.
//   - esc           : navigates back to the menu.
//   - tab/shift+tab : moves focus between the inputs and the toggle.
//   - space         : flips "remember me" while the toggle is focused.
//   - enter         : dispatches the async login command.
//
// All other key events are forwarded to the focused input widget.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = app.UserMessage(msg.err)
			m.inputs[loginFocusPassword].Reset()
			return m, nil
		}
		m.errMsg = ""
		return m, navigate(models.PageDashboard, "")

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			if m.submitting {
				return m, nil
			}
			return m, navigate(models.PageMenu, "")
		case key.Matches(msg, keys.next):
			m.setFocus((m.focus + 1) % loginFocusCount)
			return m, nil
		case key.Matches(msg, keys.prev):
			m.setFocus((m.focus - 1 + loginFocusCount) % loginFocusCount)
			return m, nil
		case key.Matches(msg, keys.toggle) && m.focus == loginFocusRemember:
			m.remember = !m.remember
			return m, nil
		case key.Matches(msg, keys.enter):
			if m.submitting {
				return m, nil
			}
			m.errMsg = ""
			m.notice = ""
			m.submitting = true
			email := strings.TrimSpace(m.inputs[loginFocusEmail].Value())
			return m, tea.Batch(m.spinner.Tick, m.cmdLogin(email, m.inputs[loginFocusPassword].Value(), m.remember))
		}
	}

	if m.focus >= len(m.inputs) {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString("Field     │ Value\n")
	b.WriteString("──────────┼────────────────────────────────────────────\n")
	b.WriteString("Email     │ [")
	b.WriteString(m.inputs[loginFocusEmail].View())
	b.WriteString("]\n")
	b.WriteString("Password  │ [")
	b.WriteString(m.inputs[loginFocusPassword].View())
	b.WriteString("]\n")

	cursor := " "
	if m.focus == loginFocusRemember {
		cursor = ">"
	}
	check := "[ ]"
	if m.remember {
		check = "[x]"
	}
	b.WriteString(cursor + " " + check + " Remember me\n")

	if m.submitting {
		b.WriteString("\n" + m.spinner.View() + " Signing in...\n")
	} else {
		b.WriteString("\n[Sign in]\n")
	}
	writeStatus(&b, m.errMsg, m.notice)

	return renderPage("SIGN IN", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ space: toggle │ enter: sign in")
}

func (m *LoginModel) cmdLogin(email, password string, remember bool) tea.Cmd {
	d := m.deps

	return func() tea.Msg {
		var session models.Session
		err := d.guard.Submit(d.ctx, service.FormLogin, func(ctx context.Context) error {
			var err error
			session, err = d.sessions.Login(ctx, email, password, remember)
			return err
		})
		return loginResultMsg{session: session, err: err}
	}
}

func (m *LoginModel) setFocus(focus int) {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = focus
	if focus < len(m.inputs) {
		m.inputs[focus].Focus()
	}
}
