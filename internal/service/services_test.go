package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/flow-bank/internal/config"
	"github.com/MKhiriev/flow-bank/internal/utils"
	"github.com/MKhiriev/flow-bank/internal/validators"
	"github.com/MKhiriev/flow-bank/models"
)

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{
			TokenSignKey: testSignKey,
			TokenIssuer:  testIssuer,
			HashKey:      "test",
			SubmitDelay:  1500 * time.Millisecond,
		},
		Ledger: config.Ledger{
			CheckingOpeningBalance: "2500.00",
			SavingsOpeningBalance:  "10000.00",
		},
	}
}

func TestNewServices_InvalidOpeningBalance(t *testing.T) {
	cfg := testConfig()
	cfg.Ledger.SavingsOpeningBalance = "lots"

	_, err := NewServices(newMemoryStorages(), cfg, utils.NewFakeClock(testNow))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "savings opening balance")
}

// TestServices_CustomerJourney drives the services the way the front end
// does: register, sign in, move money, get signed out by inactivity and
// request a password reset.
func TestServices_CustomerJourney(t *testing.T) {
	clock := utils.NewFakeClock(testNow)
	storages := newMemoryStorages()
	svcs, err := NewServices(storages, testConfig(), clock)
	require.NoError(t, err)
	ctx := context.Background()

	// registration
	var user models.User
	err = svcs.FormGuard.Submit(ctx, FormRegister, func(ctx context.Context) error {
		var regErr error
		user, regErr = svcs.RegistryService.Register(ctx, testProfile(), "Str0ng!pass", testDocument())
		return regErr
	})
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, clock.Slept())

	_, err = svcs.RegistryService.Register(ctx, models.Profile{
		FullName: "Someone Else", Email: "ADA@example.com ", Age: 30, BirthYear: testNow.Year() - 30, IDType: "passport",
	}, "An0ther!pass", testDocument())
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = svcs.RegistryService.Register(ctx, models.Profile{
		FullName: "Young", Email: "young@example.com", Age: 17, BirthYear: testNow.Year() - 17, IDType: "passport",
	}, "Str0ng!pass", testDocument())
	assert.ErrorIs(t, err, validators.ErrInvalidAge)

	users, err := storages.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.NotEqual(t, "Str0ng!pass", users[0].PasswordDigest)

	// protected pages need a session
	decision, err := svcs.SessionService.Protect(ctx, models.PageDashboard)
	require.NoError(t, err)
	assert.Equal(t, models.PageLogin, decision.RedirectTo)

	_, err = svcs.SessionService.Login(ctx, "ada@example.com", "wrong", true)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	session, err := svcs.SessionService.Login(ctx, "Ada@Example.com", "Str0ng!pass", true)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.ID)

	decision, err = svcs.SessionService.Protect(ctx, models.PageTransfer)
	require.NoError(t, err)
	require.True(t, decision.Allowed)
	require.NotNil(t, decision.Session)

	// transfer between own accounts
	accounts, err := svcs.LedgerService.Accounts(ctx, decision.Session)
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	err = svcs.FormGuard.Submit(ctx, FormTransfer, func(ctx context.Context) error {
		_, trErr := svcs.LedgerService.Transfer(ctx, decision.Session, accounts[0].Number, accounts[1].Number,
			decimal.RequireFromString("250.50"), "Savings top-up")
		return trErr
	})
	require.NoError(t, err)

	accounts, err = svcs.LedgerService.Accounts(ctx, decision.Session)
	require.NoError(t, err)
	assert.Equal(t, "2249.5", accounts[0].Balance.String())
	assert.Equal(t, "10000", accounts[1].Balance.String())

	// inactivity sign-out
	var expired error
	svcs.Monitor.OnExpire(func(err error) { expired = err })
	svcs.Monitor.Enter(ctx, models.PageTransactions)
	clock.Advance(InactivityTimeout)

	assert.ErrorIs(t, expired, ErrSessionExpired)
	_, ok, err := svcs.SessionService.CurrentSession(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// password reset
	token, err := svcs.ResetService.RequestReset(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(ResetTokenTTL), token.ExpiresAt)
}
