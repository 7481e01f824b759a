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

const dashboardRecent = 3

type dashboardItem struct {
	title string
	page  models.PageKind
}

var dashboardItems = []dashboardItem{
	{title: "Accounts", page: models.PageAccounts},
	{title: "Transfer money", page: models.PageTransfer},
	{title: "Transactions", page: models.PageTransactions},
	{title: "Sign out"},
}

// DashboardModel greets the signed-in user with a ledger summary and links to
// the other protected pages.
type DashboardModel struct {
	deps    *deps
	session *models.Session

	accounts     []models.Account
	transactions []models.Transaction
	loading      bool
	idx          int
	errMsg       string
	notice       string
}

func NewDashboardModel(d *deps) *DashboardModel {
	return &DashboardModel{deps: d}
}

func (m *DashboardModel) Init() tea.Cmd {
	return nil
}

func (m *DashboardModel) enter(session *models.Session, notice string) tea.Cmd {
	m.session = session
	m.notice = notice
	m.errMsg = ""
	m.idx = 0
	m.loading = true
	return cmdLoadLedger(m.deps, session)
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ledgerLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = app.UserMessage(msg.err)
			return m, nil
		}
		m.accounts = msg.accounts
		m.transactions = msg.transactions
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.up):
			if m.idx > 0 {
				m.idx--
			}
		case key.Matches(msg, keys.down):
			if m.idx < len(dashboardItems)-1 {
				m.idx++
			}
		case key.Matches(msg, keys.enter):
			item := dashboardItems[m.idx]
			if item.page == "" {
				return m, cmdLogout(m.deps)
			}
			return m, navigate(item.page, "")
		}
	}
	return m, nil
}

func (m *DashboardModel) View() string {
	var b strings.Builder

	if m.session != nil {
		b.WriteString(fmt.Sprintf("Welcome back, %s\n", m.session.Name))
		b.WriteString(helpStyle.Render("Signed in since " + m.session.LoginTime.Local().Format("15:04, 02 Jan 2006")))
		b.WriteString("\n\n")
	}

	switch {
	case m.loading:
		b.WriteString("Loading accounts...\n")
	case len(m.accounts) > 0:
		total := decimal.Zero
		for _, a := range m.accounts {
			total = total.Add(a.Balance)
			b.WriteString(fmt.Sprintf("%-10s %-14s %14s\n", a.Type, a.Number, formatMoney(a.Balance)))
		}
		b.WriteString(fmt.Sprintf("%-25s %14s\n", "Total", formatMoney(total)))

		if len(m.transactions) > 0 {
			b.WriteString("\nRecent activity\n")
			for i, tx := range m.transactions {
				if i == dashboardRecent {
					break
				}
				b.WriteString(fmt.Sprintf("%s  %-24s %14s\n", tx.Date.Local().Format("02 Jan"), fitText(tx.Description, 24), signedAmount(tx)))
			}
		}
	}

	b.WriteString("\n")
	for i, item := range dashboardItems {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		b.WriteString(cursor + " " + item.title + "\n")
	}
	writeStatus(&b, m.errMsg, m.notice)

	return renderPage("DASHBOARD", strings.TrimRight(b.String(), "\n"), "enter: select │ ↑/↓: navigate")
}

func cmdLoadLedger(d *deps, session *models.Session) tea.Cmd {
	return func() tea.Msg {
		accounts, err := d.ledger.Accounts(d.ctx, session)
		if err != nil {
			return ledgerLoadedMsg{err: err}
		}
		txs, err := d.ledger.Transactions(d.ctx, session)
		return ledgerLoadedMsg{accounts: accounts, transactions: txs, err: err}
	}
}

func cmdLogout(d *deps) tea.Cmd {
	return func() tea.Msg {
		return logoutDoneMsg{err: d.sessions.Logout(d.ctx)}
	}
}

func signedAmount(tx models.Transaction) string {
	if tx.Kind == models.TransactionDebit {
		return "-" + formatMoney(tx.Amount)
	}
	return "+" + formatMoney(tx.Amount)
}
