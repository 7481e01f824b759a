package config

import (
	"flag"
	"fmt"
	"io"
	"time"
)

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-d database DSN (SQLite file path)
//	-key-prefix prefix prepended to every store key
//	-c/-config json file path with configs
//	-token-sign-key reset token signing key
//	-token-issuer reset token issuer name
//	-hash-key log redaction hash key
//	-submit-delay simulated login/registration latency (e.g., "1.5s")
//	-checking-balance opening balance of the checking account
//	-savings-balance opening balance of the savings account
//	-token-cleanup-interval expired reset token pruning interval (e.g., "10m")
func parseFlags(args []string) (*StructuredConfig, error) {
	var databaseDSN string
	var keyPrefix string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var hashKey string
	var submitDelay time.Duration
	var checkingBalance string
	var savingsBalance string
	var tokenCleanupInterval time.Duration

	fs := flag.NewFlagSet("flow-bank", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&keyPrefix, "key-prefix", "", "Store key prefix")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Reset token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Reset token issuer")
	fs.StringVar(&hashKey, "hash-key", "", "Log redaction hash key")
	fs.DurationVar(&submitDelay, "submit-delay", 0, "Simulated submit latency (e.g., 1.5s)")
	fs.StringVar(&checkingBalance, "checking-balance", "", "Checking account opening balance")
	fs.StringVar(&savingsBalance, "savings-balance", "", "Savings account opening balance")
	fs.DurationVar(&tokenCleanupInterval, "token-cleanup-interval", 0, "Expired reset token cleanup interval (e.g., 10m)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey: tokenSignKey,
			TokenIssuer:  tokenIssuer,
			HashKey:      hashKey,
			SubmitDelay:  submitDelay,
		},
		Ledger: Ledger{
			CheckingOpeningBalance: checkingBalance,
			SavingsOpeningBalance:  savingsBalance,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			KeyPrefix: keyPrefix,
		},
		Workers: Workers{
			TokenCleanupInterval: tokenCleanupInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}
