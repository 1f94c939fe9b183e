package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lfsh/market-api/internal/core/domain"
)

// UserRepository persists users in the lfsh_usuario table.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, nombre, apellido, usuario, clave, api_key`

// FindByCredentials returns the user matching both fields exactly.
// Comparison is case-sensitive; no hashing is applied to the stored value.
func (r *UserRepository) FindByCredentials(ctx context.Context, usuario, clave string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM lfsh_usuario
		WHERE usuario = $1 AND clave = $2
		LIMIT 1
	`, usuario, clave)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user by credentials: %w", err)
	}
	return user, nil
}

// UpdateAPIKey overwrites the stored key for the given user id inside its
// own unit of work.
func (r *UserRepository) UpdateAPIKey(ctx context.Context, id int, key string) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE lfsh_usuario SET api_key = $2 WHERE id = $1
		`, id, key)
		if err != nil {
			return fmt.Errorf("update api key: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
}

// FindByAPIKey returns the user currently holding this exact key.
func (r *UserRepository) FindByAPIKey(ctx context.Context, key string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM lfsh_usuario
		WHERE api_key = $1
		LIMIT 1
	`, key)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by api key: %w", err)
	}
	return user, nil
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var apiKey sql.NullString
	if err := row.Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Usuario, &u.Clave, &apiKey); err != nil {
		return nil, err
	}
	u.APIKey = apiKey.String
	return &u, nil
}
