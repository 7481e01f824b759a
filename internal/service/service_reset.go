package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/flow-bank/internal/logger"
	"github.com/MKhiriev/flow-bank/internal/store"
	"github.com/MKhiriev/flow-bank/internal/utils"
	"github.com/MKhiriev/flow-bank/internal/validators"
	"github.com/MKhiriev/flow-bank/models"
)

// ResetTokenTTL is the validity period of an issued reset token.
const ResetTokenTTL = time.Hour

// resetService is the concrete implementation of ResetService.
type resetService struct {
	users     store.UserRepository
	tokens    store.ResetTokenRepository
	validator validators.Validator
	ids       IDGenerator
	clock     utils.Clock
	redactor  *utils.Redactor

	// signKey is the HMAC secret used to sign reset tokens.
	signKey string

	// issuer is the "iss" claim embedded in every reset token.
	issuer string
}

// NewResetService constructs a ResetService. signKey and issuer come from
// the application config.
func NewResetService(
	users store.UserRepository,
	tokens store.ResetTokenRepository,
	validator validators.Validator,
	ids IDGenerator,
	clock utils.Clock,
	redactor *utils.Redactor,
	signKey, issuer string,
) ResetService {
	return &resetService{
		users:     users,
		tokens:    tokens,
		validator: validator,
		ids:       ids,
		clock:     clock,
		redactor:  redactor,
		signKey:   signKey,
		issuer:    issuer,
	}
}

func (r *resetService) RequestReset(ctx context.Context, email string) (models.ResetToken, error) {
	log := logger.FromContext(ctx)

	input := validators.Registration{Profile: models.Profile{Email: email}}
	if err := r.validator.Validate(ctx, input, validators.FieldEmail); err != nil {
		return models.ResetToken{}, err
	}

	user, err := r.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Info().Str("email", r.redactor.Redact(store.NormalizeEmail(email))).Msg("reset requested for unknown email")
			return models.ResetToken{}, ErrResetNotFound
		}
		log.Err(err).Msg("user search by email failed")
		return models.ResetToken{}, fmt.Errorf("user search by email failed: %w", err)
	}

	now := r.clock.Now()
	signed, err := utils.GenerateResetToken(r.issuer, user.ID, user.Email, r.ids.Generate(), now, ResetTokenTTL, r.signKey)
	if err != nil {
		log.Err(err).Msg("reset token generation failed")
		return models.ResetToken{}, fmt.Errorf("reset token generation failed: %w", err)
	}

	token := models.ResetToken{
		Email:     user.Email,
		Token:     signed,
		ExpiresAt: now.Add(ResetTokenTTL),
	}
	if err := r.tokens.Replace(ctx, token, now); err != nil {
		log.Err(err).Msg("reset token was not stored")
		return models.ResetToken{}, fmt.Errorf("reset token was not stored: %w", err)
	}

	log.Info().Str("email", r.redactor.Redact(user.Email)).Time("expires_at", token.ExpiresAt).Msg("reset token issued")
	return token, nil
}

func (r *resetService) PruneExpired(ctx context.Context) (int, error) {
	removed, err := r.tokens.PruneExpired(ctx, r.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("reset token pruning failed: %w", err)
	}
	if removed > 0 {
		logger.FromContext(ctx).Info().Int("removed", removed).Msg("expired reset tokens pruned")
	}
	return removed, nil
}
