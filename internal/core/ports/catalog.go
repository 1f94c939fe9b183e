package ports

import (
	"context"

	"github.com/lfsh/market-api/internal/core/domain"
)

// CreateProductInput carries the four required fields for a new product.
// Precio arrives as a float because JSON numbers do; it is coerced to an
// integer on insert.
type CreateProductInput struct {
	Nombre   string
	IDOrigen int
	UMedida  string
	Precio   float64
}

// UpdateProductInput is a partial patch: nil fields are left untouched.
type UpdateProductInput struct {
	Nombre   *string
	IDOrigen *int
	UMedida  *string
	Precio   *float64
}

// ProductPage is one page of products annotated with market names.
type ProductPage struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
	Items      []domain.ProductWithMarket
}

// CatalogService implements the product/market operations behind the API.
type CatalogService interface {
	ListProducts(ctx context.Context, page, perPage int) (*ProductPage, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.ProductWithMarket, error)
	UpdateProduct(ctx context.Context, id int, input UpdateProductInput) (*domain.ProductWithMarket, error)
	// DeleteProduct removes the row and returns the snapshot taken before
	// deletion.
	DeleteProduct(ctx context.Context, id int) (*domain.ProductWithMarket, error)
	ListMarkets(ctx context.Context) ([]domain.Market, error)
}

// ProductRepository defines persistence operations for products. All reads
// join products to their market; rows whose market reference does not
// resolve are excluded by the join.
type ProductRepository interface {
	// List returns one page of joined rows plus the total joined row count.
	List(ctx context.Context, offset, limit int) ([]domain.ProductWithMarket, int, error)
	// FindByID returns the joined row, or domain.ErrProductNotFound.
	FindByID(ctx context.Context, id int) (*domain.ProductWithMarket, error)
	// Create inserts the product and fills in its generated id.
	Create(ctx context.Context, p *domain.Product) error
	// Update rewrites the mutable columns of an existing row.
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int) error
}

// MarketRepository defines read operations for markets.
type MarketRepository interface {
	List(ctx context.Context) ([]domain.Market, error)
	// FindByID returns the market, or domain.ErrMarketNotFound.
	FindByID(ctx context.Context, id int) (*domain.Market, error)
}
