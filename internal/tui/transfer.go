package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/MKhiriev/flow-bank/internal/app"
	"github.com/MKhiriev/flow-bank/internal/service"
	"github.com/MKhiriev/flow-bank/internal/validators"
	"github.com/MKhiriev/flow-bank/models"
)

const (
	transferFocusFrom = iota
	transferFocusTo
	transferFocusAmount
	transferFocusDescription
	transferFocusCount
)

// TransferModel moves money out of one of the user's accounts. The source
// is picked from the user's accounts with ←/→; the destination is free text.
type TransferModel struct {
	deps    *deps
	session *models.Session

	accounts   []models.Account
	fromIdx    int
	inputs     []textinput.Model // to, amount, description
	focus      int
	submitting bool
	receipt    *models.Receipt
	errMsg     string
}

func NewTransferModel(d *deps) *TransferModel {
	to := textinput.New()
	to.Placeholder = "destination account number"
	to.Width = 30

	amount := textinput.New()
	amount.Placeholder = "0.00"
	amount.Width = 16

	description := textinput.New()
	description.Placeholder = "optional"
	description.CharLimit = 80
	description.Width = 40

	return &TransferModel{
		deps:   d,
		inputs: []textinput.Model{to, amount, description},
	}
}

func (m *TransferModel) Init() tea.Cmd {
	return nil
}

func (m *TransferModel) enter(session *models.Session, _ string) tea.Cmd {
	m.session = session
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.fromIdx = 0
	m.submitting = false
	m.receipt = nil
	m.errMsg = ""
	m.setFocus(transferFocusFrom)
	return cmdLoadLedger(m.deps, session)
}

func (m *TransferModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ledgerLoadedMsg:
		if msg.err != nil {
			m.errMsg = app.UserMessage(msg.err)
			return m, nil
		}
		m.accounts = msg.accounts
		if m.fromIdx >= len(m.accounts) {
			m.fromIdx = 0
		}
		return m, nil

	case transferResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = app.UserMessage(msg.err)
			var vErr *validators.ValidationError
			if errors.As(msg.err, &vErr) {
				m.setFocus(transferFieldFocus(vErr.Field))
			}
			return m, nil
		}
		m.receipt = &msg.receipt
		m.inputs[transferFocusAmount-1].Reset()
		m.inputs[transferFocusDescription-1].Reset()
		return m, cmdLoadLedger(m.deps, m.session)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			if m.submitting {
				return m, nil
			}
			return m, navigate(models.PageDashboard, "")
		case key.Matches(msg, keys.next):
			m.setFocus((m.focus + 1) % transferFocusCount)
			return m, nil
		case key.Matches(msg, keys.prev):
			m.setFocus((m.focus - 1 + transferFocusCount) % transferFocusCount)
			return m, nil
		case m.focus == transferFocusFrom && key.Matches(msg, keys.left):
			if len(m.accounts) > 0 {
				m.fromIdx = (m.fromIdx - 1 + len(m.accounts)) % len(m.accounts)
			}
			return m, nil
		case m.focus == transferFocusFrom && key.Matches(msg, keys.right):
			if len(m.accounts) > 0 {
				m.fromIdx = (m.fromIdx + 1) % len(m.accounts)
			}
			return m, nil
		case key.Matches(msg, keys.enter):
			if m.submitting {
				return m, nil
			}
			return m, m.submit()
		}
	}

	if m.focus == transferFocusFrom {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus-1], cmd = m.inputs[m.focus-1].Update(msg)
	return m, cmd
}

func (m *TransferModel) submit() tea.Cmd {
	m.receipt = nil

	from := ""
	if len(m.accounts) > 0 {
		from = m.accounts[m.fromIdx].Number
	}
	to := strings.ToUpper(strings.TrimSpace(m.inputs[transferFocusTo-1].Value()))

	amount, err := decimal.NewFromString(strings.TrimSpace(m.inputs[transferFocusAmount-1].Value()))
	if err != nil {
		m.errMsg = app.MsgInvalidAmount
		m.setFocus(transferFocusAmount)
		return nil
	}

	m.errMsg = ""
	m.submitting = true
	return m.cmdTransfer(from, to, amount, m.inputs[transferFocusDescription-1].Value())
}

func (m *TransferModel) View() string {
	var b strings.Builder

	from := "-"
	if len(m.accounts) > 0 {
		a := m.accounts[m.fromIdx]
		from = fmt.Sprintf("◀ %s (%s, %s) ▶", a.Number, a.Type, formatMoney(a.Balance))
	}
	cursor := " "
	if m.focus == transferFocusFrom {
		cursor = ">"
	}

	b.WriteString("Field        │ Value\n")
	b.WriteString("─────────────┼────────────────────────────────────────────\n")
	b.WriteString(fmt.Sprintf("%-12s │%s%s\n", "From", cursor, from))
	b.WriteString(fmt.Sprintf("%-12s │ [%s]\n", "To", m.inputs[transferFocusTo-1].View()))
	b.WriteString(fmt.Sprintf("%-12s │ [%s]\n", "Amount", m.inputs[transferFocusAmount-1].View()))
	b.WriteString(fmt.Sprintf("%-12s │ [%s]\n", "Description", m.inputs[transferFocusDescription-1].View()))

	if m.submitting {
		b.WriteString("\n[Sending...]\n")
	} else {
		b.WriteString("\n[Transfer]\n")
	}

	notice := ""
	if m.receipt != nil {
		notice = fmt.Sprintf("Transfer complete: %s sent from %s to %s.\nNew balance %s. Reference %s.",
			formatMoney(m.receipt.Amount), m.receipt.From, m.receipt.To,
			formatMoney(m.receipt.BalanceAfter), m.receipt.TransactionID)
	}
	writeStatus(&b, m.errMsg, notice)

	return renderPage("TRANSFER MONEY", strings.TrimRight(b.String(), "\n"), "esc: dashboard │ tab: next field │ ←/→: source account │ enter: send")
}

func (m *TransferModel) cmdTransfer(from, to string, amount decimal.Decimal, description string) tea.Cmd {
	d := m.deps
	session := m.session

	return func() tea.Msg {
		var receipt models.Receipt
		err := d.guard.Submit(d.ctx, service.FormTransfer, func(ctx context.Context) error {
			var err error
			receipt, err = d.ledger.Transfer(ctx, session, from, to, amount, description)
			return err
		})
		return transferResultMsg{receipt: receipt, err: err}
	}
}

func (m *TransferModel) setFocus(focus int) {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = focus
	if focus > transferFocusFrom {
		m.inputs[focus-1].Focus()
	}
}

func transferFieldFocus(field string) int {
	switch field {
	case validators.FieldTo:
		return transferFocusTo
	case validators.FieldAmount:
		return transferFocusAmount
	default:
		return transferFocusFrom
	}
}
