package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/flow-bank/internal/app"
	"github.com/MKhiriev/flow-bank/models"
)

const transactionsPageSize = 10

type TransactionsModel struct {
	deps    *deps
	session *models.Session

	transactions []models.Transaction
	offset       int
	loading      bool
	errMsg       string
}

func NewTransactionsModel(d *deps) *TransactionsModel {
	return &TransactionsModel{deps: d}
}

func (m *TransactionsModel) Init() tea.Cmd {
	return nil
}

func (m *TransactionsModel) enter(session *models.Session, _ string) tea.Cmd {
	m.session = session
	m.offset = 0
	m.errMsg = ""
	m.loading = true
	return cmdLoadLedger(m.deps, session)
}

func (m *TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ledgerLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = app.UserMessage(msg.err)
			return m, nil
		}
		m.transactions = msg.transactions
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			return m, navigate(models.PageDashboard, "")
		case key.Matches(msg, keys.up):
			if m.offset > 0 {
				m.offset--
			}
		case key.Matches(msg, keys.down):
			if m.offset+transactionsPageSize < len(m.transactions) {
				m.offset++
			}
		}
	}
	return m, nil
}

func (m *TransactionsModel) View() string {
	var b strings.Builder

	switch {
	case m.loading:
		b.WriteString("Loading...\n")
	case len(m.transactions) == 0:
		b.WriteString("No transactions yet.\n")
	default:
		b.WriteString(fmt.Sprintf("%-17s │ %-14s │ %-26s │ %14s\n", "Date", "Account", "Description", "Amount"))
		b.WriteString("──────────────────┼────────────────┼────────────────────────────┼───────────────\n")

		end := min(m.offset+transactionsPageSize, len(m.transactions))
		for _, tx := range m.transactions[m.offset:end] {
			b.WriteString(fmt.Sprintf("%-17s │ %-14s │ %-26s │ %14s\n",
				tx.Date.Local().Format("02 Jan 2006 15:04"),
				tx.AccountID,
				fitText(tx.Description, 26),
				signedAmount(tx),
			))
		}
		b.WriteString(helpStyle.Render(fmt.Sprintf("\n%d-%d of %d", m.offset+1, end, len(m.transactions))))
		b.WriteString("\n")
	}
	writeStatus(&b, m.errMsg, "")

	return renderPage("TRANSACTIONS", strings.TrimRight(b.String(), "\n"), "esc: dashboard │ ↑/↓: scroll")
}
