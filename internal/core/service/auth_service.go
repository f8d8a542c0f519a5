package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/ports"
	"github.com/99minutos/auth-service/internal/pkg/metrics"
)

// AuthService implements registration and login.
type AuthService struct {
	repo      ports.UserRepository
	hasher    ports.PasswordHasher
	tokens    ports.TokenIssuer
	validator ports.InputValidator
	guard     ports.RegistrationGuard
	log       zerolog.Logger
	now       func() time.Time

	// decoyHash is compared against when the email is unknown so that both
	// login failure paths spend the same bcrypt time.
	decoyHash string
}

// NewAuthService wires the collaborators of both flows. guard may be nil, in
// which case only the store's unique index arbitrates concurrent
// registrations.
func NewAuthService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	validator ports.InputValidator,
	guard ports.RegistrationGuard,
	log zerolog.Logger,
) *AuthService {
	s := &AuthService{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		validator: validator,
		guard:     guard,
		log:       log,
		now:       time.Now,
	}
	if h, err := hasher.Hash("decoy-password"); err == nil {
		s.decoyHash = h
	}
	return s
}

// Register validates in, rejects taken emails and persists a new user with a
// salted password hash.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if err := s.validator.Validate(&in); err != nil {
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultInvalidInput).Inc()
		return nil, err
	}
	name, email, password := *in.Name, *in.Email, *in.Password

	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	release, err := s.reserve(ctx, email)
	if err != nil {
		return nil, err
	}
	defer release()

	hash, err := s.hash(password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, s.emailTaken(email)
		}
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultError).Inc()
		s.log.Error().Err(err).Str("email", email).Msg("failed to create user")
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, nil
}

// ensureEmailFree returns domain.ErrEmailTaken when a user with email is
// stored, and the lookup error when the store cannot answer.
func (s *AuthService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return s.emailTaken(email)
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	default:
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultError).Inc()
		return err
	}
}

// Login verifies the submitted credentials and issues a session token.
// Unknown emails and wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	if err := s.validator.Validate(&in); err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultInvalidInput).Inc()
		return nil, err
	}

	email, password := *in.Email, *in.Password

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.compare(password, s.decoyHash)
			return nil, s.invalidCredentials(email)
		}
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}

	if !s.compare(password, user.PasswordHash) {
		return nil, s.invalidCredentials(email)
	}

	token, err := s.tokens.Issue(user.Claims())
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.LoginResult{Token: token, User: user}, nil
}

// reserve claims email in the registration guard. A guard failure is logged
// and tolerated. When another request holds the reservation the store is asked
// again: only a stored user rejects the email, otherwise the insert goes ahead
// and the unique index decides.
func (s *AuthService) reserve(ctx context.Context, email string) (func(), error) {
	noop := func() {}
	if s.guard == nil {
		return noop, nil
	}

	ok, err := s.guard.Reserve(ctx, email)
	if err != nil {
		metrics.RegistrationGuardTotal.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Str("email", email).Msg("registration guard unavailable, relying on unique index")
		return noop, nil
	}
	if !ok {
		metrics.RegistrationGuardTotal.WithLabelValues("contended").Inc()
		if err := s.ensureEmailFree(ctx, email); err != nil {
			return nil, err
		}
		return noop, nil
	}

	metrics.RegistrationGuardTotal.WithLabelValues("acquired").Inc()
	return func() {
		if err := s.guard.Release(context.WithoutCancel(ctx), email); err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("failed to release registration guard")
		}
	}, nil
}

func (s *AuthService) hash(plaintext string) (string, error) {
	start := time.Now()
	defer func() {
		metrics.PasswordHashDuration.WithLabelValues("hash").Observe(time.Since(start).Seconds())
	}()
	return s.hasher.Hash(plaintext)
}

func (s *AuthService) compare(plaintext, hash string) bool {
	start := time.Now()
	defer func() {
		metrics.PasswordHashDuration.WithLabelValues("compare").Observe(time.Since(start).Seconds())
	}()
	return s.hasher.Compare(plaintext, hash)
}

func (s *AuthService) emailTaken(email string) error {
	metrics.RegistrationsTotal.WithLabelValues(metrics.ResultEmailTaken).Inc()
	s.log.Info().Str("email", email).Msg("registration rejected: email already registered")
	return domain.ErrEmailTaken
}

func (s *AuthService) invalidCredentials(email string) error {
	metrics.LoginsTotal.WithLabelValues(metrics.ResultInvalidCredentials).Inc()
	s.log.Info().Str("email", email).Msg("login rejected: invalid credentials")
	return domain.ErrInvalidCredentials
}
