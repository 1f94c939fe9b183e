package service

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lfsh/market-api/internal/core/domain"
)

type stubUserRepo struct {
	users []*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	return &stubUserRepo{users: users}
}

func (r *stubUserRepo) FindByCredentials(_ context.Context, usuario, clave string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Usuario == usuario && u.Clave == clave {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

func (r *stubUserRepo) UpdateAPIKey(_ context.Context, id int, key string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.APIKey = key
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByAPIKey(_ context.Context, key string) (*domain.User, error) {
	for _, u := range r.users {
		if u.APIKey != "" && u.APIKey == key {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

var keyPattern = regexp.MustCompile(`^lfsh_[0-9a-f]{32}$`)

func TestAuthService_Login_RotatesKey(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: 1, Nombre: "Luis", Apellido: "Soto", Usuario: "lsoto", Clave: "secreto", APIKey: "lfsh_old"})
	svc := NewAuthService(repo, zerolog.Nop())

	user, err := svc.Login(context.Background(), "lsoto", "secreto")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if !keyPattern.MatchString(user.APIKey) {
		t.Fatalf("unexpected key format: %q", user.APIKey)
	}
	if user.APIKey == "lfsh_old" {
		t.Fatalf("expected key to change on login")
	}
	if repo.users[0].APIKey != user.APIKey {
		t.Fatalf("new key not persisted")
	}
}

func TestAuthService_Login_KeysDifferAcrossLogins(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: 1, Usuario: "lsoto", Clave: "secreto"})
	svc := NewAuthService(repo, zerolog.Nop())

	first, err := svc.Login(context.Background(), "lsoto", "secreto")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, err := svc.Login(context.Background(), "lsoto", "secreto")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if first.APIKey == second.APIKey {
		t.Fatalf("expected a fresh key per login")
	}

	// Last login wins: the first key stops verifying.
	ok, err := svc.VerifyKey(context.Background(), first.APIKey)
	if err != nil {
		t.Fatalf("VerifyKey: %v", err)
	}
	if ok {
		t.Fatalf("expected first key to be invalidated")
	}
	ok, err = svc.VerifyKey(context.Background(), second.APIKey)
	if err != nil {
		t.Fatalf("VerifyKey: %v", err)
	}
	if !ok {
		t.Fatalf("expected second key to verify")
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: 1, Usuario: "lsoto", Clave: "secreto", APIKey: "lfsh_old"})
	svc := NewAuthService(repo, zerolog.Nop())

	cases := []struct{ usuario, clave string }{
		{"lsoto", "wrong"},
		{"LSOTO", "secreto"}, // comparison is case-sensitive
		{"nobody", "secreto"},
		{"", ""},
	}
	for _, tc := range cases {
		if _, err := svc.Login(context.Background(), tc.usuario, tc.clave); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("Login(%q, %q): expected ErrInvalidCredentials, got %v", tc.usuario, tc.clave, err)
		}
	}
	if repo.users[0].APIKey != "lfsh_old" {
		t.Fatalf("failed login must not mutate the stored key")
	}
}

func TestAuthService_VerifyKey(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: 1, Usuario: "lsoto", Clave: "s", APIKey: "lfsh_abc"})
	svc := NewAuthService(repo, zerolog.Nop())

	ok, err := svc.VerifyKey(context.Background(), "lfsh_abc")
	if err != nil || !ok {
		t.Fatalf("expected key to verify, got ok=%v err=%v", ok, err)
	}
	ok, err = svc.VerifyKey(context.Background(), "lfsh_unknown")
	if err != nil || ok {
		t.Fatalf("expected unknown key to fail, got ok=%v err=%v", ok, err)
	}
	ok, err = svc.VerifyKey(context.Background(), "")
	if err != nil || ok {
		t.Fatalf("expected empty key to fail, got ok=%v err=%v", ok, err)
	}
}

func TestAuthService_UserByKey(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: 7, Usuario: "lsoto", Clave: "s", APIKey: "lfsh_abc"})
	svc := NewAuthService(repo, zerolog.Nop())

	user, err := svc.UserByKey(context.Background(), "lfsh_abc")
	if err != nil {
		t.Fatalf("UserByKey: %v", err)
	}
	if user.ID != 7 {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.UserByKey(context.Background(), "lfsh_unknown"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
