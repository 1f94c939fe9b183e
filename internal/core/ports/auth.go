package ports

import (
	"context"

	"github.com/lfsh/market-api/internal/core/domain"
)

// AuthService validates credentials and manages API keys.
type AuthService interface {
	// Login checks an exact username/password pair. On success it issues a
	// fresh API key, persists it on the user row, and returns the updated
	// user. Returns domain.ErrInvalidCredentials when no row matches.
	Login(ctx context.Context, usuario, clave string) (*domain.User, error)
	// VerifyKey reports whether some user currently holds this exact key.
	VerifyKey(ctx context.Context, key string) (bool, error)
	// UserByKey resolves the user owning the given key.
	UserByKey(ctx context.Context, key string) (*domain.User, error)
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// FindByCredentials returns the user matching both fields exactly, or
	// domain.ErrInvalidCredentials when none does.
	FindByCredentials(ctx context.Context, usuario, clave string) (*domain.User, error)
	// UpdateAPIKey overwrites the stored key for the given user id.
	UpdateAPIKey(ctx context.Context, id int, key string) error
	// FindByAPIKey returns the user holding the key, or domain.ErrUserNotFound.
	FindByAPIKey(ctx context.Context, key string) (*domain.User, error)
}
