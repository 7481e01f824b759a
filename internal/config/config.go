// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// flow-bank client. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix : prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       : direct environment variable name for scalar fields.
//   - envDefault: value used when the variable is not set.
type StructuredConfig struct {
	// App holds application-level settings such as token signing parameters
	// and the simulated submit latency.
	App App `envPrefix:"APP_"`

	// Ledger holds the opening balances of implicitly provisioned accounts.
	Ledger Ledger `envPrefix:"LEDGER_"`

	// Storage holds configuration for the durable key-value tier.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds configuration for background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret used to sign password-reset tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY" envDefault:"flow-bank-reset-key"`

	// TokenIssuer is the "iss" claim embedded in every reset token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER" envDefault:"flow-bank"`

	// HashKey is the HMAC key used to redact e-mail addresses in logs.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY" envDefault:"flow-bank"`

	// SubmitDelay is the simulated latency applied to login and
	// registration submits (e.g. "1.5s").
	// Env: APP_SUBMIT_DELAY
	SubmitDelay time.Duration `env:"SUBMIT_DELAY" envDefault:"1500ms"`
}

// Ledger holds opening balances, as decimal strings, for the accounts
// created on a user's first ledger access.
type Ledger struct {
	// Env: LEDGER_CHECKING_OPENING_BALANCE
	CheckingOpeningBalance string `env:"CHECKING_OPENING_BALANCE" envDefault:"2500.00"`
	// Env: LEDGER_SAVINGS_OPENING_BALANCE
	SavingsOpeningBalance string `env:"SAVINGS_OPENING_BALANCE" envDefault:"10000.00"`
}

// Storage groups the configuration for the storage backends.
type Storage struct {
	// DB holds the SQLite connection settings of the durable tier.
	DB DB `envPrefix:"DB_"`

	// KeyPrefix is prepended to every store key. Empty by default.
	// Env: STORAGE_KEY_PREFIX
	KeyPrefix string `env:"KEY_PREFIX"`
}

// DB holds connection settings for the SQLite database.
type DB struct {
	// DSN is the SQLite database file path (e.g. "flowbank.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN" envDefault:"flowbank.db"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// TokenCleanupInterval defines how often expired reset tokens are pruned.
	// Env: WORKERS_TOKEN_CLEANUP_INTERVAL
	TokenCleanupInterval time.Duration `env:"TOKEN_CLEANUP_INTERVAL" envDefault:"10m"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables (with defaults)
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
