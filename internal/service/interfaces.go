package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/flow-bank/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// IDGenerator produces unique identifiers for users, transactions and
// tokens.
type IDGenerator interface {
	Generate() string
}

// RegistryService registers new users.
type RegistryService interface {
	// Register validates the input, rejects taken emails and stores the
	// new user with a salted password digest. Validation failures are
	// *validators.ValidationError; a taken email is ErrDuplicateEmail.
	// Nothing is written unless every check passes.
	Register(ctx context.Context, profile models.Profile, rawPassword string, doc *models.IDDocument) (models.User, error)
}

// SessionService authenticates users and guards pages.
type SessionService interface {
	// Login checks the credentials and stores a session in the durable tier
	// when remember is true, otherwise in the ephemeral tier. Any mismatch
	// returns ErrAuthenticationFailed.
	Login(ctx context.Context, email, password string, remember bool) (models.Session, error)

	// CurrentSession returns the durable session if present, else the
	// ephemeral one.
	CurrentSession(ctx context.Context) (models.Session, bool, error)

	// Protect redirects to login when page is protected and nobody is
	// signed in; otherwise it allows access.
	Protect(ctx context.Context, page models.PageKind) (models.AccessDecision, error)

	// RedirectIfSignedIn sends a signed-in user away from the login page to
	// the dashboard.
	RedirectIfSignedIn(ctx context.Context, page models.PageKind) (models.AccessDecision, error)

	// Logout clears the session from both tiers. It is idempotent.
	Logout(ctx context.Context) error
}

// LedgerService reads and mutates a user's accounts.
type LedgerService interface {
	// Accounts lists the user's accounts, provisioning the default ones on
	// first access.
	Accounts(ctx context.Context, session *models.Session) ([]models.Account, error)

	// Transactions lists the user's transactions, newest first.
	Transactions(ctx context.Context, session *models.Session) ([]models.Transaction, error)

	// Transfer debits amount from the source account and records a debit
	// transaction. The destination account is not credited.
	Transfer(ctx context.Context, session *models.Session, from, to string, amount decimal.Decimal, description string) (models.Receipt, error)
}

// ResetService issues password-reset tokens.
type ResetService interface {
	// RequestReset replaces any token for email with a new one valid for
	// ResetTokenTTL. A malformed email is a *validators.ValidationError; an
	// unknown one is ErrResetNotFound.
	RequestReset(ctx context.Context, email string) (models.ResetToken, error)

	// PruneExpired drops expired tokens and returns how many were removed.
	PruneExpired(ctx context.Context) (int, error)
}

// ResetTokenJanitor periodically prunes expired reset tokens.
type ResetTokenJanitor interface {
	// Start launches the background goroutine. Any previously running job
	// is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the goroutine to exit and blocks until it has.
	Stop()
}
