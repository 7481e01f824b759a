package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/MKhiriev/flow-bank/internal/app"
	"github.com/MKhiriev/flow-bank/models"
)

type AccountsModel struct {
	deps    *deps
	session *models.Session

	accounts []models.Account
	loading  bool
	errMsg   string
}

func NewAccountsModel(d *deps) *AccountsModel {
	return &AccountsModel{deps: d}
}

func (m *AccountsModel) Init() tea.Cmd {
	return nil
}

func (m *AccountsModel) enter(session *models.Session, _ string) tea.Cmd {
	m.session = session
	m.errMsg = ""
	m.loading = true
	return cmdLoadLedger(m.deps, session)
}

func (m *AccountsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ledgerLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = app.UserMessage(msg.err)
			return m, nil
		}
		m.accounts = msg.accounts
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			return m, navigate(models.PageDashboard, "")
		case key.Matches(msg, keys.enter):
			return m, navigate(models.PageTransfer, "")
		}
	}
	return m, nil
}

func (m *AccountsModel) View() string {
	var b strings.Builder

	if m.loading {
		b.WriteString("Loading...\n")
	} else {
		b.WriteString(fmt.Sprintf("%-14s │ %-10s │ %14s\n", "Number", "Type", "Balance"))
		b.WriteString("───────────────┼────────────┼───────────────\n")
		total := decimal.Zero
		for _, a := range m.accounts {
			total = total.Add(a.Balance)
			b.WriteString(fmt.Sprintf("%-14s │ %-10s │ %14s\n", a.Number, a.Type, formatMoney(a.Balance)))
		}
		b.WriteString("───────────────┼────────────┼───────────────\n")
		b.WriteString(fmt.Sprintf("%-14s │ %-10s │ %14s\n", "Total", "", formatMoney(total)))
	}
	writeStatus(&b, m.errMsg, "")

	return renderPage("ACCOUNTS", strings.TrimRight(b.String(), "\n"), "esc: dashboard │ enter: transfer money")
}
