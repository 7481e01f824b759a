package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_AllFlags(t *testing.T) {
	args := []string{
		"-d", "/tmp/bank.db",
		"-key-prefix", "nexusbank_",
		"-c", "/etc/flow-bank.json",
		"-token-sign-key", "sign",
		"-token-issuer", "issuer",
		"-hash-key", "hash",
		"-submit-delay", "250ms",
		"-checking-balance", "1.00",
		"-savings-balance", "2.00",
		"-token-cleanup-interval", "30s",
	}

	cfg, err := parseFlags(args)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/bank.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "nexusbank_", cfg.Storage.KeyPrefix)
	assert.Equal(t, "/etc/flow-bank.json", cfg.JSONFilePath)
	assert.Equal(t, "sign", cfg.App.TokenSignKey)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
	assert.Equal(t, "hash", cfg.App.HashKey)
	assert.Equal(t, 250*time.Millisecond, cfg.App.SubmitDelay)
	assert.Equal(t, "1.00", cfg.Ledger.CheckingOpeningBalance)
	assert.Equal(t, "2.00", cfg.Ledger.SavingsOpeningBalance)
	assert.Equal(t, 30*time.Second, cfg.Workers.TokenCleanupInterval)
}

func TestParseFlags_ConfigAlias(t *testing.T) {
	cfg, err := parseFlags([]string{"-config", "alias.json"})
	require.NoError(t, err)
	assert.Equal(t, "alias.json", cfg.JSONFilePath)
}

func TestParseFlags_NoArgsYieldsZeroConfig(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	cfg, err := parseFlags([]string{"-a", "localhost:8080"})
	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestParseFlags_BadDuration(t *testing.T) {
	_, err := parseFlags([]string{"-submit-delay", "fast"})
	assert.Error(t, err)
}
