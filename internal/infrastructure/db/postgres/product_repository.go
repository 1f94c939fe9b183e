package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lfsh/market-api/internal/core/domain"
)

// ProductRepository persists products in the lfsh_productos table. Reads
// join against lfsh_mercados so every returned row carries its market name;
// products whose market reference does not resolve are excluded by the join.
//
// The column names "idOrigen" and "uMedida" are quoted because the legacy
// schema uses mixed case.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productJoin = `
	FROM lfsh_productos p
	JOIN lfsh_mercados m ON p."idOrigen" = m.id`

// List returns one page of joined rows ordered by product id, plus the total
// joined row count.
func (r *ProductRepository) List(ctx context.Context, offset, limit int) ([]domain.ProductWithMarket, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+productJoin).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p."idOrigen", p.nombre, p."uMedida", p.precio, m.nombre`+productJoin+`
		ORDER BY p.id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.ProductWithMarket, 0)
	for rows.Next() {
		var p domain.ProductWithMarket
		if err := rows.Scan(&p.ID, &p.IDOrigen, &p.Nombre, &p.UMedida, &p.Precio, &p.Mercado); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

// FindByID returns the joined row, or domain.ErrProductNotFound.
func (r *ProductRepository) FindByID(ctx context.Context, id int) (*domain.ProductWithMarket, error) {
	var p domain.ProductWithMarket
	err := r.db.QueryRowContext(ctx, `
		SELECT p.id, p."idOrigen", p.nombre, p."uMedida", p.precio, m.nombre`+productJoin+`
		WHERE p.id = $1
	`, id).Scan(&p.ID, &p.IDOrigen, &p.Nombre, &p.UMedida, &p.Precio, &p.Mercado)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &p, nil
}

// Create inserts the product and fills in its generated id.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO lfsh_productos ("idOrigen", nombre, "uMedida", precio)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, p.IDOrigen, p.Nombre, p.UMedida, p.Precio).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		return nil
	})
}

// Update rewrites the mutable columns of an existing row.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE lfsh_productos
			SET "idOrigen" = $2, nombre = $3, "uMedida" = $4, precio = $5
			WHERE id = $1
		`, p.ID, p.IDOrigen, p.Nombre, p.UMedida, p.Precio)
		if err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return domain.ErrProductNotFound
		}
		return nil
	})
}

// Delete removes the row physically.
func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			DELETE FROM lfsh_productos WHERE id = $1
		`, id)
		if err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return domain.ErrProductNotFound
		}
		return nil
	})
}
