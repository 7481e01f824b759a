package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/flow-bank/internal/crypto"
	"github.com/MKhiriev/flow-bank/internal/logger"
	"github.com/MKhiriev/flow-bank/internal/store"
	"github.com/MKhiriev/flow-bank/internal/utils"
	"github.com/MKhiriev/flow-bank/models"
)

// sessionService is the concrete implementation of SessionService.
type sessionService struct {
	users    store.UserRepository
	sessions store.SessionRepository
	hasher   crypto.PasswordHasher
	clock    utils.Clock
	redactor *utils.Redactor

	decoyOnce   sync.Once
	decoyDigest string
}

// NewSessionService constructs a SessionService backed by the given
// repositories.
func NewSessionService(
	users store.UserRepository,
	sessions store.SessionRepository,
	hasher crypto.PasswordHasher,
	clock utils.Clock,
	redactor *utils.Redactor,
) SessionService {
	return &sessionService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		clock:    clock,
		redactor: redactor,
	}
}

// Login authenticates a registered user.
//
// Returns the stored session or:
//   - ErrAuthenticationFailed if a field is empty, the email is unknown or
//     the password does not match. The caller cannot tell these apart.
//   - A wrapped storage error if a repository call fails.
func (s *sessionService) Login(ctx context.Context, email, password string, remember bool) (models.Session, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(email) == "" || password == "" {
		log.Info().Msg("login with empty credentials")
		return models.Session{}, ErrAuthenticationFailed
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			// same hashing cost as a wrong password
			s.hasher.Verify(password, s.decoy())
			log.Info().Str("email", s.redactor.Redact(store.NormalizeEmail(email))).Msg("login failed")
			return models.Session{}, ErrAuthenticationFailed
		}
		log.Err(err).Msg("user search by email failed")
		return models.Session{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordDigest) {
		log.Info().Str("email", s.redactor.Redact(user.Email)).Msg("login failed")
		return models.Session{}, ErrAuthenticationFailed
	}

	persistence := models.PersistenceEphemeral
	if remember {
		persistence = models.PersistenceDurable
	}

	session := models.Session{
		ID:          user.ID,
		Name:        user.FullName,
		Email:       user.Email,
		LoginTime:   s.clock.Now(),
		Persistence: persistence,
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("session save failed")
		return models.Session{}, fmt.Errorf("session save failed: %w", err)
	}

	log.Info().Str("user_id", user.ID).Str("persistence", string(persistence)).Msg("user signed in")
	return session, nil
}

// decoy returns a digest produced by the configured hasher, verified against
// when the email is unknown.
func (s *sessionService) decoy() string {
	s.decoyOnce.Do(func() {
		digest, err := s.hasher.Hash("flow-bank-decoy")
		if err != nil {
			return
		}
		s.decoyDigest = digest
	})
	return s.decoyDigest
}

func (s *sessionService) CurrentSession(ctx context.Context) (models.Session, bool, error) {
	session, ok, err := s.sessions.Current(ctx)
	if err != nil {
		return models.Session{}, false, fmt.Errorf("session lookup failed: %w", err)
	}
	return session, ok, nil
}

func (s *sessionService) Protect(ctx context.Context, page models.PageKind) (models.AccessDecision, error) {
	session, ok, err := s.CurrentSession(ctx)
	if err != nil {
		return models.AccessDecision{}, err
	}

	if !ok {
		if page.Protected() {
			return models.Redirect(models.PageLogin), nil
		}
		return models.Allow(nil), nil
	}

	return models.Allow(&session), nil
}

func (s *sessionService) RedirectIfSignedIn(ctx context.Context, page models.PageKind) (models.AccessDecision, error) {
	session, ok, err := s.CurrentSession(ctx)
	if err != nil {
		return models.AccessDecision{}, err
	}

	if ok && page == models.PageLogin {
		return models.Redirect(models.PageDashboard), nil
	}
	if !ok {
		return models.Allow(nil), nil
	}
	return models.Allow(&session), nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Msg("session clear failed")
		return fmt.Errorf("session clear failed: %w", err)
	}
	return nil
}
