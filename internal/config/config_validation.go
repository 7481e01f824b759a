// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.HashKey == "" || cfg.App.SubmitDelay < 0 {
		return ErrInvalidAppConfigs
	}

	for _, balance := range []string{cfg.Ledger.CheckingOpeningBalance, cfg.Ledger.SavingsOpeningBalance} {
		d, err := decimal.NewFromString(balance)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidLedgerConfigs, err)
		}
		if d.IsNegative() {
			return ErrInvalidLedgerConfigs
		}
	}

	if cfg.Workers.TokenCleanupInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
