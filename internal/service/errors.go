package service

import "errors"

var (
	// ErrAuthenticationFailed is returned for every failed login, whether the
	// email is unknown or the password is wrong.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrDuplicateEmail is returned when registering an email that is taken.
	ErrDuplicateEmail = errors.New("email is already registered")
	// ErrUnauthenticated is returned when an operation needs a session and
	// none is present.
	ErrUnauthenticated = errors.New("not signed in")
	// ErrSessionExpired is delivered to the expiry handler when the
	// inactivity deadline passes.
	ErrSessionExpired = errors.New("session expired")

	ErrSameAccount       = errors.New("source and destination accounts are the same")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrAccountNotFound accompanies ErrInsufficientFunds when the source
	// account does not belong to the user.
	ErrAccountNotFound = errors.New("account not found")

	// ErrResetNotFound is returned when a reset is requested for an email
	// nobody registered with.
	ErrResetNotFound = errors.New("no account registered with this email")

	// ErrSubmitInProgress is returned when a form is submitted again while
	// the previous submission has not resolved.
	ErrSubmitInProgress = errors.New("submission already in progress")
)
