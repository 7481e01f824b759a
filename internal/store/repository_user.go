package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/flow-bank/internal/logger"
	"github.com/MKhiriev/flow-bank/models"
)

type userRepository struct {
	kv KeyValueStore
}

// NewUserRepository returns a UserRepository over the durable tier.
func NewUserRepository(kv KeyValueStore) UserRepository {
	return &userRepository{kv: kv}
}

// NormalizeEmail returns the form used for uniqueness and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := readJSON(ctx, r.kv, KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return models.User{}, err
	}

	normalized := NormalizeEmail(email)
	for _, u := range users {
		if NormalizeEmail(u.Email) == normalized {
			return u, nil
		}
	}

	return models.User{}, ErrNoUserWasFound
}

func (r *userRepository) Create(ctx context.Context, user models.User, doc models.IDDocument) error {
	log := logger.FromContext(ctx)

	users, err := r.List(ctx)
	if err != nil {
		return err
	}

	normalized := NormalizeEmail(user.Email)
	for _, u := range users {
		if NormalizeEmail(u.Email) == normalized {
			return ErrEmailAlreadyExists
		}
	}

	if user.IDDocumentRef == "" {
		user.IDDocumentRef = IDDocumentKey(user.ID)
	}

	usersRaw, err := encodeJSON(KeyUsers, append(users, user))
	if err != nil {
		return err
	}
	docRaw, err := encodeJSON(user.IDDocumentRef, doc)
	if err != nil {
		return err
	}

	if err := r.kv.SetMany(ctx, map[string][]byte{
		KeyUsers:           usersRaw,
		user.IDDocumentRef: docRaw,
	}); err != nil {
		log.Err(err).Str("func", "userRepository.Create").Str("user_id", user.ID).Msg("failed to store user")
		return fmt.Errorf("failed to store user: %w", err)
	}

	return nil
}

func (r *userRepository) Document(ctx context.Context, userID string) (models.IDDocument, error) {
	var doc models.IDDocument
	found, err := readJSON(ctx, r.kv, IDDocumentKey(userID), &doc)
	if err != nil {
		return models.IDDocument{}, err
	}
	if !found {
		return models.IDDocument{}, ErrDocumentNotFound
	}
	return doc, nil
}
