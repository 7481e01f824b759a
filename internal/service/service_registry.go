package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/flow-bank/internal/crypto"
	"github.com/MKhiriev/flow-bank/internal/logger"
	"github.com/MKhiriev/flow-bank/internal/store"
	"github.com/MKhiriev/flow-bank/internal/utils"
	"github.com/MKhiriev/flow-bank/internal/validators"
	"github.com/MKhiriev/flow-bank/models"
)

// registryService is the concrete implementation of RegistryService.
// It validates the registration form, rejects already registered emails and
// stores the user together with the uploaded ID document.
type registryService struct {
	users     store.UserRepository
	validator validators.Validator
	hasher    crypto.PasswordHasher
	ids       IDGenerator
	clock     utils.Clock

	// redactor hides email addresses in log output.
	redactor *utils.Redactor
}

// NewRegistryService constructs a RegistryService. The returned service keeps
// no mutable state of its own.
func NewRegistryService(
	users store.UserRepository,
	validator validators.Validator,
	hasher crypto.PasswordHasher,
	ids IDGenerator,
	clock utils.Clock,
	redactor *utils.Redactor,
) RegistryService {
	return &registryService{
		users:     users,
		validator: validator,
		hasher:    hasher,
		ids:       ids,
		clock:     clock,
		redactor:  redactor,
	}
}

// Register validates the input in field order and returns the first failing
// rule as a *validators.ValidationError. On valid input it fails with
// ErrDuplicateEmail when the normalized email already exists, otherwise the
// user and the document are written in one store operation.
func (r *registryService) Register(ctx context.Context, profile models.Profile, rawPassword string, doc *models.IDDocument) (models.User, error) {
	log := logger.FromContext(ctx)

	registration := validators.Registration{Profile: profile, Password: rawPassword, Document: doc}
	if err := r.validator.Validate(ctx, registration); err != nil {
		log.Info().Err(err).Str("email", r.redactor.Redact(profile.Email)).Msg("registration rejected")
		return models.User{}, err
	}

	email := store.NormalizeEmail(profile.Email)
	_, err := r.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		log.Info().Str("email", r.redactor.Redact(email)).Msg("email already registered")
		return models.User{}, ErrDuplicateEmail
	case !errors.Is(err, store.ErrNoUserWasFound):
		log.Err(err).Msg("user lookup failed")
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	digest, err := r.hasher.Hash(rawPassword)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	id := r.ids.Generate()
	user := models.User{
		ID:             id,
		FullName:       strings.TrimSpace(profile.FullName),
		Email:          email,
		Address:        strings.TrimSpace(profile.Address),
		Occupation:     strings.TrimSpace(profile.Occupation),
		Phone:          strings.TrimSpace(profile.Phone),
		Age:            profile.Age,
		BirthYear:      profile.BirthYear,
		IDType:         strings.TrimSpace(profile.IDType),
		IDDocumentRef:  store.IDDocumentKey(id),
		PasswordDigest: digest,
		CreatedAt:      r.clock.Now(),
	}

	stored := *doc
	stored.MIMEType = validators.DocumentMIMEType(stored)
	stored.Size = int64(len(stored.Content))
	if stored.Size == 0 {
		stored.Size = doc.Size
	}

	if err := r.users.Create(ctx, user, stored); err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.User{}, ErrDuplicateEmail
		}
		log.Err(err).Str("user_id", id).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("user_id", id).Str("email", r.redactor.Redact(email)).Msg("user registered")
	return user, nil
}
