package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/flow-bank/internal/logger"
	"github.com/MKhiriev/flow-bank/models"
)

type ledgerRepository struct {
	kv KeyValueStore
}

// NewLedgerRepository returns a LedgerRepository over the durable tier.
func NewLedgerRepository(kv KeyValueStore) LedgerRepository {
	return &ledgerRepository{kv: kv}
}

func (r *ledgerRepository) Accounts(ctx context.Context, userID string) ([]models.Account, bool, error) {
	var accounts []models.Account
	present, _, err := readStored(ctx, r.kv, AccountsKey(userID), &accounts)
	if err != nil {
		return nil, false, err
	}
	return accounts, present, nil
}

func (r *ledgerRepository) Transactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if _, err := readJSON(ctx, r.kv, TransactionsKey(userID), &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *ledgerRepository) Save(ctx context.Context, userID string, accounts []models.Account, transactions []models.Transaction) error {
	log := logger.FromContext(ctx)

	if accounts == nil {
		accounts = []models.Account{}
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	accountsRaw, err := encodeJSON(AccountsKey(userID), accounts)
	if err != nil {
		return err
	}
	transactionsRaw, err := encodeJSON(TransactionsKey(userID), transactions)
	if err != nil {
		return err
	}

	if err := r.kv.SetMany(ctx, map[string][]byte{
		AccountsKey(userID):     accountsRaw,
		TransactionsKey(userID): transactionsRaw,
	}); err != nil {
		log.Err(err).Str("func", "ledgerRepository.Save").Str("user_id", userID).Msg("failed to store ledger")
		return fmt.Errorf("failed to store ledger: %w", err)
	}

	return nil
}
