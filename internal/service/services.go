package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/flow-bank/internal/config"
	"github.com/MKhiriev/flow-bank/internal/crypto"
	"github.com/MKhiriev/flow-bank/internal/store"
	"github.com/MKhiriev/flow-bank/internal/utils"
	"github.com/MKhiriev/flow-bank/internal/validators"
)

type Services struct {
	RegistryService RegistryService
	SessionService  SessionService
	LedgerService   LedgerService
	ResetService    ResetService

	Monitor   *InactivityMonitor
	FormGuard *FormGuard
	Janitor   ResetTokenJanitor
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, clock utils.Clock) (*Services, error) {
	checking, err := decimal.NewFromString(cfg.Ledger.CheckingOpeningBalance)
	if err != nil {
		return nil, fmt.Errorf("invalid checking opening balance: %w", err)
	}
	savings, err := decimal.NewFromString(cfg.Ledger.SavingsOpeningBalance)
	if err != nil {
		return nil, fmt.Errorf("invalid savings opening balance: %w", err)
	}

	ids := utils.NewUUIDGenerator()
	hasher := crypto.NewPasswordHasher()
	validator := validators.NewRegistrationValidator(clock)
	redactor := utils.NewRedactor(cfg.App.HashKey)

	sessionSvc := NewSessionService(storages.Users, storages.Sessions, hasher, clock, redactor)
	resetSvc := NewResetService(storages.Users, storages.ResetTokens, validator, ids, clock, redactor,
		cfg.App.TokenSignKey, cfg.App.TokenIssuer)

	return &Services{
		RegistryService: NewRegistryService(storages.Users, validator, hasher, ids, clock, redactor),
		SessionService:  sessionSvc,
		LedgerService: NewLedgerService(storages.Ledger, ids, clock, OpeningBalances{
			Checking: checking,
			Savings:  savings,
		}),
		ResetService: resetSvc,
		Monitor:      NewInactivityMonitor(sessionSvc, clock),
		FormGuard:    NewFormGuard(clock, cfg.App.SubmitDelay),
		Janitor:      NewResetTokenJanitor(resetSvc),
	}, nil
}
