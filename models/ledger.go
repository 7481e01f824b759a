package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType names the kind of a provisioned account.
type AccountType string

const (
	AccountChecking AccountType = "checking"
	AccountSavings  AccountType = "savings"
)

// Account is one of a user's accounts. Balance never drops below zero.
type Account struct {
	OwnerID string          `json:"ownerId"`
	Number  string          `json:"number"`
	Type    AccountType     `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

// TransactionKind is the direction of a ledger entry.
type TransactionKind string

const (
	TransactionCredit TransactionKind = "credit"
	TransactionDebit  TransactionKind = "debit"
)

// Transaction is an immutable ledger entry. Amount is always positive; the
// direction is carried by Kind.
type Transaction struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"accountId"`
	Date        time.Time       `json:"date"`
	Kind        TransactionKind `json:"kind"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Receipt summarizes a completed transfer.
type Receipt struct {
	TransactionID string
	From          string
	To            string
	Amount        decimal.Decimal
	BalanceAfter  decimal.Decimal
	Date          time.Time
}
