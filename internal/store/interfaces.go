package store

import (
	"context"
	"time"

	"github.com/MKhiriev/flow-bank/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// KeyValueStore is a flat string-keyed byte store. Both the durable and the
// ephemeral tier implement it.
type KeyValueStore interface {
	// Get returns the value under key or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// SetMany stores all entries atomically: either every entry is written
	// or none is.
	SetMany(ctx context.Context, entries map[string][]byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// UserRepository persists registered users under the "users" key.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	// FindByEmail matches on the lowercase-trimmed address and returns
	// ErrNoUserWasFound when nobody is registered with it.
	FindByEmail(ctx context.Context, email string) (models.User, error)
	// Create appends user and stores doc under user.IDDocumentRef in one
	// atomic write. Returns ErrEmailAlreadyExists on a duplicate address.
	Create(ctx context.Context, user models.User, doc models.IDDocument) error
	// Document returns the ID document stored for userID.
	Document(ctx context.Context, userID string) (models.IDDocument, error)
}

// SessionRepository persists the signed-in session under "current_user" in
// exactly one tier.
type SessionRepository interface {
	// Save writes session into the tier named by session.Persistence and
	// removes it from the other tier.
	Save(ctx context.Context, session models.Session) error
	// Current returns the durable session if present, else the ephemeral
	// one. Malformed records count as absent.
	Current(ctx context.Context) (models.Session, bool, error)
	// Clear removes the session from both tiers.
	Clear(ctx context.Context) error
}

// LedgerRepository persists accounts and transactions per user.
type LedgerRepository interface {
	// Accounts returns the user's accounts. found is false only when no
	// accounts value is stored; a malformed value is found with no accounts.
	Accounts(ctx context.Context, userID string) (accounts []models.Account, found bool, err error)
	// Transactions returns the user's transactions, newest first.
	Transactions(ctx context.Context, userID string) ([]models.Transaction, error)
	// Save writes accounts and transactions in one atomic write.
	Save(ctx context.Context, userID string, accounts []models.Account, transactions []models.Transaction) error
}

// ResetTokenRepository persists issued password-reset tokens under
// "reset_tokens".
type ResetTokenRepository interface {
	List(ctx context.Context) ([]models.ResetToken, error)
	// Replace removes every token for token.Email and every token expired at
	// now, then appends token.
	Replace(ctx context.Context, token models.ResetToken, now time.Time) error
	// PruneExpired removes tokens expired at now and returns how many were
	// removed.
	PruneExpired(ctx context.Context, now time.Time) (int, error)
}
