package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lfsh/market-api/internal/core/domain"
)

// MarketRepository reads markets from the lfsh_mercados table. The API never
// writes markets.
type MarketRepository struct {
	db *sql.DB
}

func NewMarketRepository(db *sql.DB) *MarketRepository {
	return &MarketRepository{db: db}
}

// List returns every market row ordered by id.
func (r *MarketRepository) List(ctx context.Context) ([]domain.Market, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, nombre FROM lfsh_mercados ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list markets: %w", err)
	}
	defer rows.Close()

	markets := make([]domain.Market, 0)
	for rows.Next() {
		var m domain.Market
		if err := rows.Scan(&m.ID, &m.Nombre); err != nil {
			return nil, fmt.Errorf("scan market: %w", err)
		}
		markets = append(markets, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list markets: %w", err)
	}
	return markets, nil
}

// FindByID returns the market, or domain.ErrMarketNotFound.
func (r *MarketRepository) FindByID(ctx context.Context, id int) (*domain.Market, error) {
	var m domain.Market
	err := r.db.QueryRowContext(ctx, `
		SELECT id, nombre FROM lfsh_mercados WHERE id = $1
	`, id).Scan(&m.ID, &m.Nombre)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMarketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find market: %w", err)
	}
	return &m, nil
}
