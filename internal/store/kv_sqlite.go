// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/flow-bank/internal/logger"
	"github.com/MKhiriev/flow-bank/internal/utils"
)

const (
	kvTable       = "kv_store"
	kvKeyColumn   = "store_key"
	kvValueColumn = "value"
	kvTimeColumn  = "updated_at"
)

// sqliteStore is the durable tier: one row per key in the kv_store table.
type sqliteStore struct {
	db      *DB
	builder sq.StatementBuilderType
	clock   utils.Clock
}

// NewSQLiteStore returns a KeyValueStore persisting into db. The schema is
// expected to be migrated already.
func NewSQLiteStore(db *DB, clock utils.Clock) KeyValueStore {
	return &sqliteStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		clock:   clock,
	}
}

func (s *sqliteStore) Get(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Select(kvValueColumn).
		From(kvTable).
		Where(sq.Eq{kvKeyColumn: key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value []byte
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		log.Err(err).Str("func", "sqliteStore.Get").Str("key", key).Msg("failed to read key")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, nil
}

func (s *sqliteStore) Set(ctx context.Context, key string, value []byte) error {
	return s.SetMany(ctx, map[string][]byte{key: value})
}

func (s *sqliteStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	log := logger.FromContext(ctx)

	if len(entries) == 0 {
		return nil
	}

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "sqliteStore.SetMany").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	now := s.clock.Now().UTC()
	for _, key := range keys {
		query, args, err := s.builder.
			Insert(kvTable).
			Columns(kvKeyColumn, kvValueColumn, kvTimeColumn).
			Values(key, entries[key], now).
			Suffix("ON CONFLICT(" + kvKeyColumn + ") DO UPDATE SET " +
				kvValueColumn + " = excluded." + kvValueColumn + ", " +
				kvTimeColumn + " = excluded." + kvTimeColumn).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Str("func", "sqliteStore.SetMany").Str("key", key).Msg("failed to upsert key")
			return fmt.Errorf("%w (key=%s): %w", ErrExecutingStatement, key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "sqliteStore.SetMany").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (s *sqliteStore) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Delete(kvTable).
		Where(sq.Eq{kvKeyColumn: key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "sqliteStore.Delete").Str("key", key).Msg("failed to delete key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
