package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/flow-bank/internal/app"
	"github.com/MKhiriev/flow-bank/internal/service"
	"github.com/MKhiriev/flow-bank/models"
)

// ResetModel requests a password-reset token. The app has no mail delivery,
// so the issued token is shown on screen and can be copied.
type ResetModel struct {
	deps *deps

	input      textinput.Model
	submitting bool
	token      *models.ResetToken
	errMsg     string
	status     string
}

func NewResetModel(d *deps) *ResetModel {
	input := textinput.New()
	input.Placeholder = "you@example.com"
	input.CharLimit = 254
	input.Width = 40

	return &ResetModel{deps: d, input: input}
}

func (m *ResetModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ResetModel) enter(_ *models.Session, _ string) tea.Cmd {
	m.input.Reset()
	m.input.Focus()
	m.submitting = false
	m.token = nil
	m.errMsg = ""
	m.status = ""
	return textinput.Blink
}

func (m *ResetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resetResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = app.ResetMessage(msg.err)
			return m, nil
		}
		m.token = &msg.token
		m.input.Blur()
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "Could not copy: " + msg.err.Error()
		} else {
			m.status = "Token copied to clipboard."
		}
		return m, cmdClearStatus()

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			return m, navigate(models.PageMenu, "")
		case m.token != nil && !m.input.Focused() && key.Matches(msg, keys.copy):
			return m, cmdCopyToClipboard(m.token.Token)
		case key.Matches(msg, keys.enter):
			if m.submitting {
				return m, nil
			}
			if !m.input.Focused() {
				m.token = nil
				m.input.Focus()
				return m, textinput.Blink
			}
			m.errMsg = ""
			m.submitting = true
			return m, m.cmdRequestReset(strings.TrimSpace(m.input.Value()))
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ResetModel) View() string {
	var b strings.Builder
	b.WriteString("Enter your email address to reset your password:\n\n")
	b.WriteString("Email │ [")
	b.WriteString(m.input.View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Sending...]\n")
	}

	hotKeys := "esc: back │ enter: send reset link"
	if m.token != nil {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render("Password reset link sent to " + m.token.Email))
		b.WriteString("\n\nDemo token:\n")
		b.WriteString(m.token.Token)
		b.WriteString(fmt.Sprintf("\n\nValid until %s.\n", m.token.ExpiresAt.Local().Format("15:04, 02 Jan 2006")))
		b.WriteString(helpStyle.Render("(In a real app, this would be sent via email)"))
		b.WriteString("\n")
		hotKeys = "esc: back │ c: copy token │ enter: new request"
	}
	writeStatus(&b, m.errMsg, m.status)

	return renderPage("RESET PASSWORD", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m *ResetModel) cmdRequestReset(email string) tea.Cmd {
	d := m.deps

	return func() tea.Msg {
		var token models.ResetToken
		err := d.guard.Submit(d.ctx, service.FormReset, func(ctx context.Context) error {
			var err error
			token, err = d.reset.RequestReset(ctx, email)
			return err
		})
		return resetResultMsg{token: token, err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
