package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/flow-bank/internal/logger"
	"github.com/MKhiriev/flow-bank/internal/store"
	"github.com/MKhiriev/flow-bank/internal/utils"
	"github.com/MKhiriev/flow-bank/internal/validators"
	"github.com/MKhiriev/flow-bank/models"
)

// OpeningBalances are the balances of the accounts provisioned on a user's
// first ledger access.
type OpeningBalances struct {
	Checking decimal.Decimal
	Savings  decimal.Decimal
}

// ledgerService is the concrete implementation of LedgerService.
type ledgerService struct {
	ledger   store.LedgerRepository
	ids      IDGenerator
	clock    utils.Clock
	openings OpeningBalances

	// mu serializes read-modify-write cycles on the ledger keys.
	mu sync.Mutex
}

// NewLedgerService constructs a LedgerService over the given repository.
func NewLedgerService(ledger store.LedgerRepository, ids IDGenerator, clock utils.Clock, openings OpeningBalances) LedgerService {
	return &ledgerService{
		ledger:   ledger,
		ids:      ids,
		clock:    clock,
		openings: openings,
	}
}

func (l *ledgerService) Accounts(ctx context.Context, session *models.Session) ([]models.Account, error) {
	if session == nil || session.ID == "" {
		return nil, ErrUnauthenticated
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.accounts(ctx, session.ID)
}

func (l *ledgerService) Transactions(ctx context.Context, session *models.Session) ([]models.Transaction, error) {
	if session == nil || session.ID == "" {
		return nil, ErrUnauthenticated
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.accounts(ctx, session.ID); err != nil {
		return nil, err
	}

	txs, err := l.ledger.Transactions(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("transactions lookup failed: %w", err)
	}
	return txs, nil
}

// Transfer checks its preconditions in order and returns the first failure:
//   - ErrUnauthenticated when session is nil.
//   - ErrSameAccount scoped to "to" when from equals to.
//   - ErrInvalidAmount scoped to "amount" when amount is not positive.
//   - ErrInsufficientFunds scoped to "from" when the user has no such
//     account (also matching ErrAccountNotFound), or scoped to "amount"
//     when the balance is lower than amount.
//
// On success the source balance is reduced by amount and one debit
// transaction is prepended. The destination is not looked up or credited.
func (l *ledgerService) Transfer(ctx context.Context, session *models.Session, from, to string, amount decimal.Decimal, description string) (models.Receipt, error) {
	log := logger.FromContext(ctx)

	if session == nil || session.ID == "" {
		return models.Receipt{}, ErrUnauthenticated
	}
	if from == to {
		return models.Receipt{}, validators.NewValidationError(validators.FieldTo, ErrSameAccount)
	}
	if !amount.IsPositive() {
		return models.Receipt{}, validators.NewValidationError(validators.FieldAmount, ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	accounts, err := l.accounts(ctx, session.ID)
	if err != nil {
		return models.Receipt{}, err
	}

	idx := -1
	for i, a := range accounts {
		if a.Number == from {
			idx = i
			break
		}
	}
	if idx < 0 {
		log.Info().Str("user_id", session.ID).Str("from", from).Msg("transfer from unknown account")
		return models.Receipt{}, validators.NewValidationError(validators.FieldFrom,
			fmt.Errorf("%w: %w", ErrInsufficientFunds, ErrAccountNotFound))
	}
	if accounts[idx].Balance.LessThan(amount) {
		return models.Receipt{}, validators.NewValidationError(validators.FieldAmount, ErrInsufficientFunds)
	}

	txs, err := l.ledger.Transactions(ctx, session.ID)
	if err != nil {
		return models.Receipt{}, fmt.Errorf("transactions lookup failed: %w", err)
	}

	now := l.clock.Now()
	if strings.TrimSpace(description) == "" {
		description = "Transfer to " + to
	}

	accounts[idx].Balance = accounts[idx].Balance.Sub(amount)
	tx := models.Transaction{
		ID:          l.ids.Generate(),
		AccountID:   from,
		Date:        now,
		Kind:        models.TransactionDebit,
		Description: strings.TrimSpace(description),
		Amount:      amount,
	}
	txs = append([]models.Transaction{tx}, txs...)

	if err := l.ledger.Save(ctx, session.ID, accounts, txs); err != nil {
		log.Err(err).Str("user_id", session.ID).Msg("transfer was not stored")
		return models.Receipt{}, fmt.Errorf("transfer was not stored: %w", err)
	}

	log.Info().
		Str("user_id", session.ID).
		Str("transaction_id", tx.ID).
		Str("amount", amount.StringFixed(2)).
		Msg("transfer completed")

	return models.Receipt{
		TransactionID: tx.ID,
		From:          from,
		To:            to,
		Amount:        amount,
		BalanceAfter:  accounts[idx].Balance,
		Date:          now,
	}, nil
}

// accounts returns the user's accounts, provisioning them first if no
// accounts value is stored. Must be called with mu held.
func (l *ledgerService) accounts(ctx context.Context, userID string) ([]models.Account, error) {
	accounts, found, err := l.ledger.Accounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("accounts lookup failed: %w", err)
	}
	if found {
		return accounts, nil
	}

	// history recorded before the accounts key went missing is kept
	existing, err := l.ledger.Transactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("transactions lookup failed: %w", err)
	}

	accounts, txs := l.provision(userID)
	txs = append(txs, existing...)
	if err := l.ledger.Save(ctx, userID, accounts, txs); err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", userID).Msg("account provisioning failed")
		return nil, fmt.Errorf("account provisioning failed: %w", err)
	}

	logger.FromContext(ctx).Info().Str("user_id", userID).Msg("accounts provisioned")
	return accounts, nil
}

func (l *ledgerService) provision(userID string) ([]models.Account, []models.Transaction) {
	suffix := accountSuffix(userID)
	accounts := []models.Account{
		{OwnerID: userID, Number: "CHK-" + suffix, Type: models.AccountChecking, Balance: l.openings.Checking},
		{OwnerID: userID, Number: "SAV-" + suffix, Type: models.AccountSavings, Balance: l.openings.Savings},
	}

	now := l.clock.Now()
	var txs []models.Transaction
	for _, a := range accounts {
		if !a.Balance.IsPositive() {
			continue
		}
		txs = append(txs, models.Transaction{
			ID:          l.ids.Generate(),
			AccountID:   a.Number,
			Date:        now,
			Kind:        models.TransactionCredit,
			Description: "Opening deposit",
			Amount:      a.Balance,
		})
	}

	return accounts, txs
}

// accountSuffix derives the account number suffix from the last eight
// alphanumeric characters of the user id.
func accountSuffix(userID string) string {
	s := strings.ToUpper(strings.ReplaceAll(userID, "-", ""))
	if len(s) > 8 {
		s = s[len(s)-8:]
	}
	return s
}
