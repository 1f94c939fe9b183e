package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lfsh/market-api/internal/core/domain"
	"github.com/lfsh/market-api/internal/core/ports"
)

// keyPrefix is carried by every issued API key.
const keyPrefix = "lfsh"

// AuthService implements credential validation and API key management.
//
// Credentials are compared exactly against the stored values. Hardening
// (hashed passwords, key expiry) belongs behind this interface; callers only
// see users and keys.
type AuthService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, logger: logger}
}

// Login validates an exact username/password pair. On success a fresh API
// key is persisted on the user row and the updated user is returned. Any
// previously issued key for the same user stops working at that moment;
// the last login wins.
func (s *AuthService) Login(ctx context.Context, usuario, clave string) (*domain.User, error) {
	if usuario == "" || clave == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByCredentials(ctx, usuario, clave)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return nil, err
		}
		s.logger.Error().Err(err).Msg("credential lookup failed")
		return nil, err
	}

	key := generateAPIKey()
	if err := s.repo.UpdateAPIKey(ctx, user.ID, key); err != nil {
		s.logger.Error().Err(err).Int("user_id", user.ID).Msg("failed to persist api key")
		return nil, err
	}
	user.APIKey = key

	s.logger.Info().Str("usuario", user.Usuario).Msg("login succeeded, api key rotated")
	return user, nil
}

// VerifyKey reports whether some user row currently holds this exact key.
func (s *AuthService) VerifyKey(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, nil
	}
	_, err := s.repo.FindByAPIKey(ctx, key)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UserByKey resolves the user owning the given key.
func (s *AuthService) UserByKey(ctx context.Context, key string) (*domain.User, error) {
	return s.repo.FindByAPIKey(ctx, key)
}

// generateAPIKey returns a key of the form lfsh_<32 hex characters>.
func generateAPIKey() string {
	u := uuid.New()
	return fmt.Sprintf("%s_%x", keyPrefix, u[:])
}
