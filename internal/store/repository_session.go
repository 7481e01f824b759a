package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/flow-bank/models"
)

type sessionRepository struct {
	durable   KeyValueStore
	ephemeral KeyValueStore
}

// NewSessionRepository returns a SessionRepository spanning both tiers.
func NewSessionRepository(durable, ephemeral KeyValueStore) SessionRepository {
	return &sessionRepository{durable: durable, ephemeral: ephemeral}
}

func (r *sessionRepository) Save(ctx context.Context, session models.Session) error {
	target, other := r.ephemeral, r.durable
	if session.Persistence == models.PersistenceDurable {
		target, other = r.durable, r.ephemeral
	}

	raw, err := encodeJSON(KeyCurrentUser, session)
	if err != nil {
		return err
	}

	if err := target.Set(ctx, KeyCurrentUser, raw); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	if err := other.Delete(ctx, KeyCurrentUser); err != nil {
		return fmt.Errorf("failed to remove session from the other tier: %w", err)
	}

	return nil
}

func (r *sessionRepository) Current(ctx context.Context) (models.Session, bool, error) {
	for _, kv := range []KeyValueStore{r.durable, r.ephemeral} {
		var session models.Session
		found, err := readJSON(ctx, kv, KeyCurrentUser, &session)
		if err != nil {
			return models.Session{}, false, err
		}
		if found && session.ID != "" {
			return session, true, nil
		}
	}

	return models.Session{}, false, nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	return errors.Join(
		r.durable.Delete(ctx, KeyCurrentUser),
		r.ephemeral.Delete(ctx, KeyCurrentUser),
	)
}
