package models

import "time"

// PersistenceMode selects the store tier a session is written to.
type PersistenceMode string

const (
	// PersistenceDurable keeps the session across restarts ("remember me").
	PersistenceDurable PersistenceMode = "durable"
	// PersistenceEphemeral keeps the session for the current run only.
	PersistenceEphemeral PersistenceMode = "ephemeral"
)

// Session describes the signed-in user.
type Session struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	LoginTime   time.Time       `json:"loginTime"`
	Persistence PersistenceMode `json:"persistence"`
}

// PageKind identifies a front-end page.
type PageKind string

const (
	PageDashboard    PageKind = "dashboard"
	PageAccounts     PageKind = "accounts"
	PageTransfer     PageKind = "transfer"
	PageTransactions PageKind = "transactions"
	PageLogin        PageKind = "login"
	PageRegister     PageKind = "register"
	PageReset        PageKind = "reset"
	PageMenu         PageKind = "menu"
)

// Protected reports whether the page requires a session.
func (p PageKind) Protected() bool {
	switch p {
	case PageDashboard, PageAccounts, PageTransfer, PageTransactions:
		return true
	default:
		return false
	}
}

// AccessDecision is the outcome of a page guard check. Either Allowed is
// true and Session is set, or RedirectTo names the page to show instead.
type AccessDecision struct {
	Allowed    bool
	Session    *Session
	RedirectTo PageKind
}

// Allow returns a decision granting access with the given session.
func Allow(s *Session) AccessDecision {
	return AccessDecision{Allowed: true, Session: s}
}

// Redirect returns a decision sending the user to page.
func Redirect(page PageKind) AccessDecision {
	return AccessDecision{RedirectTo: page}
}
