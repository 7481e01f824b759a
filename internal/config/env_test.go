// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_TOKEN_SIGN_KEY": "jwt_secret",
		"APP_TOKEN_ISSUER":   "test_issuer",
		"APP_HASH_KEY":       "security_hash",
		"APP_SUBMIT_DELAY":   "2s",

		"LEDGER_CHECKING_OPENING_BALANCE": "100.50",
		"LEDGER_SAVINGS_OPENING_BALANCE":  "200",

		// Storage has nested prefixes: STORAGE_ + DB_
		"STORAGE_DB_DSN":     "/tmp/bank.db",
		"STORAGE_KEY_PREFIX": "nexusbank_",

		"WORKERS_TOKEN_CLEANUP_INTERVAL": "1m",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, "test_issuer", cfg.App.TokenIssuer)
	assert.Equal(t, "security_hash", cfg.App.HashKey)
	assert.Equal(t, 2*time.Second, cfg.App.SubmitDelay)

	assert.Equal(t, "100.50", cfg.Ledger.CheckingOpeningBalance)
	assert.Equal(t, "200", cfg.Ledger.SavingsOpeningBalance)

	assert.Equal(t, "/tmp/bank.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "nexusbank_", cfg.Storage.KeyPrefix)

	assert.Equal(t, time.Minute, cfg.Workers.TokenCleanupInterval)
}

func TestParseEnv_Defaults(t *testing.T) {
	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "flowbank.db", cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.Storage.KeyPrefix)
	assert.Equal(t, 1500*time.Millisecond, cfg.App.SubmitDelay)
	assert.Equal(t, "flow-bank", cfg.App.TokenIssuer)
	assert.Equal(t, "2500.00", cfg.Ledger.CheckingOpeningBalance)
	assert.Equal(t, "10000.00", cfg.Ledger.SavingsOpeningBalance)
	assert.Equal(t, 10*time.Minute, cfg.Workers.TokenCleanupInterval)
	assert.NoError(t, cfg.validate())
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("APP_SUBMIT_DELAY", "soon")

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}
