package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/lfsh/market-api/internal/core/domain"
)

func userRows(t *testing.T, u domain.User) *sqlmock.Rows {
	t.Helper()
	return sqlmock.NewRows([]string{"id", "nombre", "apellido", "usuario", "clave", "api_key"}).
		AddRow(u.ID, u.Nombre, u.Apellido, u.Usuario, u.Clave, u.APIKey)
}

func TestUserRepository_FindByCredentials(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM lfsh_usuario`)).
		WithArgs("lsoto", "secreto").
		WillReturnRows(userRows(t, domain.User{ID: 1, Nombre: "Luis", Apellido: "Soto", Usuario: "lsoto", Clave: "secreto", APIKey: "lfsh_abc"}))

	repo := NewUserRepository(db)
	user, err := repo.FindByCredentials(context.Background(), "lsoto", "secreto")
	if err != nil {
		t.Fatalf("FindByCredentials: %v", err)
	}
	if user.ID != 1 || user.APIKey != "lfsh_abc" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_FindByCredentials_NoMatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM lfsh_usuario`)).
		WithArgs("lsoto", "wrong").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "apellido", "usuario", "clave", "api_key"}))

	repo := NewUserRepository(db)
	if _, err := repo.FindByCredentials(context.Background(), "lsoto", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserRepository_UpdateAPIKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE lfsh_usuario SET api_key`)).
		WithArgs(1, "lfsh_new").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewUserRepository(db)
	if err := repo.UpdateAPIKey(context.Background(), 1, "lfsh_new"); err != nil {
		t.Fatalf("UpdateAPIKey: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_UpdateAPIKey_UnknownUserRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE lfsh_usuario SET api_key`)).
		WithArgs(42, "lfsh_new").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewUserRepository(db)
	if err := repo.UpdateAPIKey(context.Background(), 42, "lfsh_new"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_FindByAPIKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE api_key = $1`)).
		WithArgs("lfsh_abc").
		WillReturnRows(userRows(t, domain.User{ID: 1, Usuario: "lsoto", APIKey: "lfsh_abc"}))

	repo := NewUserRepository(db)
	user, err := repo.FindByAPIKey(context.Background(), "lfsh_abc")
	if err != nil {
		t.Fatalf("FindByAPIKey: %v", err)
	}
	if user.Usuario != "lsoto" {
		t.Fatalf("unexpected user: %+v", user)
	}

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE api_key = $1`)).
		WithArgs("lfsh_missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "apellido", "usuario", "clave", "api_key"}))

	if _, err := repo.FindByAPIKey(context.Background(), "lfsh_missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
