package tui

import (
	"github.com/MKhiriev/flow-bank/models"
)

// NavigateTo asks the root model to open Page. Every navigation passes the
// page guard first. Notice is shown on the target page.
type NavigateTo struct {
	Page   models.PageKind
	Notice string
}

// navigationMsg carries the guard decision for a requested page.
type navigationMsg struct {
	page     models.PageKind
	notice   string
	decision models.AccessDecision
	err      error
}

// sessionExpiredMsg is sent by the inactivity monitor.
type sessionExpiredMsg struct {
	err error
}

type loginResultMsg struct {
	session models.Session
	err     error
}

type registerResultMsg struct {
	user models.User
	err  error
}

type resetResultMsg struct {
	token models.ResetToken
	err   error
}

type transferResultMsg struct {
	receipt models.Receipt
	err     error
}

type ledgerLoadedMsg struct {
	accounts     []models.Account
	transactions []models.Transaction
	err          error
}

type logoutDoneMsg struct {
	err error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
