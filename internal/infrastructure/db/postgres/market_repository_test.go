package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/lfsh/market-api/internal/core/domain"
)

func TestMarketRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM lfsh_mercados`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre"}).
			AddRow(1, "Central").
			AddRow(2, "Norte"))

	repo := NewMarketRepository(db)
	markets, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(markets) != 2 || markets[1].Nombre != "Norte" {
		t.Fatalf("unexpected markets: %+v", markets)
	}
}

func TestMarketRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre"}).AddRow(1, "Central"))

	repo := NewMarketRepository(db)
	m, err := repo.FindByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if m.Nombre != "Central" {
		t.Fatalf("unexpected market: %+v", m)
	}

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1`)).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre"}))

	if _, err := repo.FindByID(context.Background(), 99); !errors.Is(err, domain.ErrMarketNotFound) {
		t.Fatalf("expected ErrMarketNotFound, got %v", err)
	}
}
