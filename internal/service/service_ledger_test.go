package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/flow-bank/internal/mock"
	"github.com/MKhiriev/flow-bank/internal/store"
	"github.com/MKhiriev/flow-bank/internal/utils"
	"github.com/MKhiriev/flow-bank/internal/validators"
	"github.com/MKhiriev/flow-bank/models"
)

var testOpenings = OpeningBalances{
	Checking: decimal.RequireFromString("2500.00"),
	Savings:  decimal.RequireFromString("10000.00"),
}

func newTestLedgerSvc(t *testing.T) (LedgerService, *store.Storages, *utils.FakeClock) {
	t.Helper()
	storages := newMemoryStorages()
	clock := utils.NewFakeClock(testNow)
	return NewLedgerService(storages.Ledger, &seqIDs{prefix: "tx"}, clock, testOpenings), storages, clock
}

var ledgerSession = &models.Session{ID: "0190c9a2-7d3e-7b8a-9c1d-2e3f4a5b6c7d", Name: "Ada"}

const (
	checkingNo = "CHK-4A5B6C7D"
	savingsNo  = "SAV-4A5B6C7D"
)

func TestLedgerService_ProvisionsOnFirstAccess(t *testing.T) {
	svc, storages, _ := newTestLedgerSvc(t)
	ctx := context.Background()

	accounts, err := svc.Accounts(ctx, ledgerSession)
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	assert.Equal(t, checkingNo, accounts[0].Number)
	assert.Equal(t, models.AccountChecking, accounts[0].Type)
	assert.True(t, accounts[0].Balance.Equal(testOpenings.Checking))
	assert.Equal(t, savingsNo, accounts[1].Number)
	assert.True(t, accounts[1].Balance.Equal(testOpenings.Savings))

	txs, err := svc.Transactions(ctx, ledgerSession)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	for _, tx := range txs {
		assert.Equal(t, models.TransactionCredit, tx.Kind)
		assert.True(t, tx.Amount.IsPositive())
	}

	// second access reads what was stored
	stored, found, err := storages.Ledger.Accounts(ctx, ledgerSession.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, stored, 2)
}

func TestLedgerService_Transfer_DebitsSourceOnly(t *testing.T) {
	svc, _, clock := newTestLedgerSvc(t)
	ctx := context.Background()

	_, err := svc.Accounts(ctx, ledgerSession)
	require.NoError(t, err)
	clock.Advance(1)

	amount := decimal.RequireFromString("100.00")
	receipt, err := svc.Transfer(ctx, ledgerSession, checkingNo, savingsNo, amount, "Rent")
	require.NoError(t, err)

	assert.True(t, receipt.BalanceAfter.Equal(decimal.RequireFromString("2400.00")))
	assert.Equal(t, checkingNo, receipt.From)
	assert.Equal(t, savingsNo, receipt.To)

	accounts, err := svc.Accounts(ctx, ledgerSession)
	require.NoError(t, err)
	assert.True(t, accounts[0].Balance.Equal(decimal.RequireFromString("2400.00")))
	assert.True(t, accounts[1].Balance.Equal(testOpenings.Savings), "destination must not be credited")

	txs, err := svc.Transactions(ctx, ledgerSession)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	newest := txs[0]
	assert.Equal(t, receipt.TransactionID, newest.ID)
	assert.Equal(t, models.TransactionDebit, newest.Kind)
	assert.Equal(t, checkingNo, newest.AccountID)
	assert.Equal(t, "Rent", newest.Description)
	assert.True(t, newest.Amount.Equal(amount))
	assert.Equal(t, clock.Now(), newest.Date)
}

func TestLedgerService_Transfer_ExternalDestination(t *testing.T) {
	svc, _, _ := newTestLedgerSvc(t)
	ctx := context.Background()

	receipt, err := svc.Transfer(ctx, ledgerSession, savingsNo, "EXT-00000001", decimal.NewFromInt(10000), "")
	require.NoError(t, err)
	assert.True(t, receipt.BalanceAfter.IsZero())

	txs, err := svc.Transactions(ctx, ledgerSession)
	require.NoError(t, err)
	assert.Equal(t, "Transfer to EXT-00000001", txs[0].Description)
}

func TestLedgerService_Transfer_Preconditions(t *testing.T) {
	tests := []struct {
		name      string
		session   *models.Session
		from, to  string
		amount    decimal.Decimal
		wantErr   error
		wantField string
	}{
		{name: "no session", session: nil, from: checkingNo, to: savingsNo, amount: decimal.NewFromInt(1), wantErr: ErrUnauthenticated},
		{name: "same account", session: ledgerSession, from: checkingNo, to: checkingNo, amount: decimal.NewFromInt(-1), wantErr: ErrSameAccount, wantField: validators.FieldTo},
		{name: "zero amount", session: ledgerSession, from: checkingNo, to: savingsNo, amount: decimal.Zero, wantErr: ErrInvalidAmount, wantField: validators.FieldAmount},
		{name: "negative amount", session: ledgerSession, from: "CHK-NOPE", to: savingsNo, amount: decimal.NewFromInt(-5), wantErr: ErrInvalidAmount, wantField: validators.FieldAmount},
		{name: "unknown source", session: ledgerSession, from: "CHK-NOPE", to: savingsNo, amount: decimal.NewFromInt(1), wantErr: ErrInsufficientFunds, wantField: validators.FieldFrom},
		{name: "overdraft", session: ledgerSession, from: checkingNo, to: savingsNo, amount: decimal.RequireFromString("2500.01"), wantErr: ErrInsufficientFunds, wantField: validators.FieldAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestLedgerSvc(t)
			ctx := context.Background()

			_, err := svc.Transfer(ctx, tt.session, tt.from, tt.to, tt.amount, "x")
			require.ErrorIs(t, err, tt.wantErr)

			var vErr *validators.ValidationError
			if tt.wantField == "" {
				assert.False(t, errors.As(err, &vErr))
				return
			}
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantField, vErr.Field)

			// nothing changed
			accounts, err := svc.Accounts(ctx, ledgerSession)
			require.NoError(t, err)
			assert.True(t, accounts[0].Balance.Equal(testOpenings.Checking))
			txs, err := svc.Transactions(ctx, ledgerSession)
			require.NoError(t, err)
			assert.Len(t, txs, 2)
		})
	}
}

func TestLedgerService_Transfer_UnknownSourceCarriesNotFound(t *testing.T) {
	svc, _, _ := newTestLedgerSvc(t)

	_, err := svc.Transfer(context.Background(), ledgerSession, "CHK-NOPE", savingsNo, decimal.NewFromInt(1), "")
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.ErrorIs(t, err, validators.ErrValidation)
}

func TestLedgerService_Transfer_SaveErrorIsWrapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockLedgerRepository(ctrl)
	svc := NewLedgerService(repo, &seqIDs{prefix: "tx"}, utils.NewFakeClock(testNow), testOpenings)
	ctx := context.Background()
	dbErr := errors.New("disk full")

	accounts := []models.Account{{OwnerID: "u", Number: "CHK-1", Balance: decimal.NewFromInt(50)}}
	repo.EXPECT().Accounts(ctx, "u").Return(accounts, true, nil)
	repo.EXPECT().Transactions(ctx, "u").Return(nil, nil)
	repo.EXPECT().Save(ctx, "u", gomock.Any(), gomock.Any()).Return(dbErr)

	_, err := svc.Transfer(ctx, &models.Session{ID: "u"}, "CHK-1", "SAV-1", decimal.NewFromInt(5), "")
	require.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "transfer was not stored")
}

func TestLedgerService_ZeroOpeningBalanceHasNoDeposit(t *testing.T) {
	storages := newMemoryStorages()
	svc := NewLedgerService(storages.Ledger, &seqIDs{prefix: "tx"}, utils.NewFakeClock(testNow), OpeningBalances{
		Checking: decimal.NewFromInt(100),
	})

	txs, err := svc.Transactions(context.Background(), ledgerSession)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, checkingNo, txs[0].AccountID)
}

func TestAccountSuffix(t *testing.T) {
	assert.Equal(t, "4A5B6C7D", accountSuffix("0190c9a2-7d3e-7b8a-9c1d-2e3f4a5b6c7d"))
	assert.Equal(t, "U1", accountSuffix("u-1"))
}

func newLedgerSvcOver(durable store.KeyValueStore) LedgerService {
	storages := store.NewTieredStorages(durable, store.NewMemoryStore())
	return NewLedgerService(storages.Ledger, &seqIDs{prefix: "tx"}, utils.NewFakeClock(testNow), testOpenings)
}

func TestLedgerService_MalformedAccountsDoNotReprovision(t *testing.T) {
	ctx := context.Background()
	durable := store.NewMemoryStore()
	svc := newLedgerSvcOver(durable)

	_, err := svc.Transfer(ctx, ledgerSession, checkingNo, savingsNo, decimal.NewFromInt(100), "Rent")
	require.NoError(t, err)
	historyBefore, err := durable.Get(ctx, store.TransactionsKey(ledgerSession.ID))
	require.NoError(t, err)

	require.NoError(t, durable.Set(ctx, store.AccountsKey(ledgerSession.ID), []byte(`{broken`)))

	accounts, err := svc.Accounts(ctx, ledgerSession)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	txs, err := svc.Transactions(ctx, ledgerSession)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, models.TransactionDebit, txs[0].Kind)
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromInt(100)))

	_, err = svc.Transfer(ctx, ledgerSession, checkingNo, savingsNo, decimal.NewFromInt(1), "")
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	historyAfter, err := durable.Get(ctx, store.TransactionsKey(ledgerSession.ID))
	require.NoError(t, err)
	assert.Equal(t, historyBefore, historyAfter)
}

func TestLedgerService_ReprovisionKeepsHistory(t *testing.T) {
	ctx := context.Background()
	durable := store.NewMemoryStore()
	svc := newLedgerSvcOver(durable)

	receipt, err := svc.Transfer(ctx, ledgerSession, checkingNo, savingsNo, decimal.NewFromInt(100), "Rent")
	require.NoError(t, err)

	require.NoError(t, durable.Delete(ctx, store.AccountsKey(ledgerSession.ID)))

	accounts, err := svc.Accounts(ctx, ledgerSession)
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	txs, err := svc.Transactions(ctx, ledgerSession)
	require.NoError(t, err)
	require.Len(t, txs, 5)
	ids := make([]string, 0, len(txs))
	for _, tx := range txs {
		ids = append(ids, tx.ID)
	}
	assert.Contains(t, ids, receipt.TransactionID)
}
