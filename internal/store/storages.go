package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/flow-bank/internal/config"
	"github.com/MKhiriev/flow-bank/internal/logger"
	"github.com/MKhiriev/flow-bank/internal/utils"
)

// Storages groups the typed repositories built on top of the two store
// tiers into a single value that can be passed around the service layer.
type Storages struct {
	Users       UserRepository
	Sessions    SessionRepository
	Ledger      LedgerRepository
	ResetTokens ResetTokenRepository

	db *DB
}

// NewStorages initialises the storage layer. It performs the following
// steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Wraps the SQLite tier and a fresh in-memory tier with cfg.KeyPrefix
//     and builds the repositories on top of them.
func NewStorages(ctx context.Context, cfg config.Storage, clock utils.Clock, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	storages := NewTieredStorages(
		Prefixed(cfg.KeyPrefix, NewSQLiteStore(db, clock)),
		Prefixed(cfg.KeyPrefix, NewMemoryStore()),
	)
	storages.db = db

	return storages, nil
}

// NewTieredStorages builds the repositories over the given durable and
// ephemeral tiers.
func NewTieredStorages(durable, ephemeral KeyValueStore) *Storages {
	return &Storages{
		Users:       NewUserRepository(durable),
		Sessions:    NewSessionRepository(durable, ephemeral),
		Ledger:      NewLedgerRepository(durable),
		ResetTokens: NewResetTokenRepository(durable),
	}
}

// Close releases the database connection, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
