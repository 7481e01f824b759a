package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/flow-bank/models"
)

type resetTokenRepository struct {
	kv KeyValueStore
}

// NewResetTokenRepository returns a ResetTokenRepository over the durable tier.
func NewResetTokenRepository(kv KeyValueStore) ResetTokenRepository {
	return &resetTokenRepository{kv: kv}
}

func (r *resetTokenRepository) List(ctx context.Context) ([]models.ResetToken, error) {
	var tokens []models.ResetToken
	if _, err := readJSON(ctx, r.kv, KeyResetTokens, &tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *resetTokenRepository) Replace(ctx context.Context, token models.ResetToken, now time.Time) error {
	tokens, err := r.List(ctx)
	if err != nil {
		return err
	}

	email := NormalizeEmail(token.Email)
	kept := make([]models.ResetToken, 0, len(tokens)+1)
	for _, t := range tokens {
		if NormalizeEmail(t.Email) == email || t.Expired(now) {
			continue
		}
		kept = append(kept, t)
	}

	return r.write(ctx, append(kept, token))
}

func (r *resetTokenRepository) PruneExpired(ctx context.Context, now time.Time) (int, error) {
	tokens, err := r.List(ctx)
	if err != nil {
		return 0, err
	}

	kept := make([]models.ResetToken, 0, len(tokens))
	for _, t := range tokens {
		if !t.Expired(now) {
			kept = append(kept, t)
		}
	}

	removed := len(tokens) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	return removed, r.write(ctx, kept)
}

func (r *resetTokenRepository) write(ctx context.Context, tokens []models.ResetToken) error {
	raw, err := encodeJSON(KeyResetTokens, tokens)
	if err != nil {
		return err
	}
	if err := r.kv.Set(ctx, KeyResetTokens, raw); err != nil {
		return fmt.Errorf("failed to store reset tokens: %w", err)
	}
	return nil
}
