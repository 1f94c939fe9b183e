package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/lfsh/market-api/internal/core/domain"
	"github.com/lfsh/market-api/internal/core/ports"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
)

// CatalogService implements product CRUD and the market listing. Every
// product read is annotated with the market name; every product write
// validates the market reference first.
type CatalogService struct {
	products ports.ProductRepository
	markets  ports.MarketRepository
	logger   zerolog.Logger
}

func NewCatalogService(products ports.ProductRepository, markets ports.MarketRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{products: products, markets: markets, logger: logger}
}

// ListProducts returns one page of products joined with market names, plus
// total row and page counts. Out-of-range page parameters fall back to the
// defaults (page 1, 10 per page).
func (s *CatalogService) ListProducts(ctx context.Context, page, perPage int) (*ports.ProductPage, error) {
	if page < 1 {
		page = defaultPage
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}

	offset := (page - 1) * perPage
	items, total, err := s.products.List(ctx, offset, perPage)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, err
	}

	return &ports.ProductPage{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
		Items:      items,
	}, nil
}

// CreateProduct validates the market reference and the price, inserts the
// row, and returns it annotated with the market name.
func (s *CatalogService) CreateProduct(ctx context.Context, input ports.CreateProductInput) (*domain.ProductWithMarket, error) {
	if input.Precio < 0 {
		return nil, domain.ErrInvalidPrice
	}

	market, err := s.markets.FindByID(ctx, input.IDOrigen)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		IDOrigen: input.IDOrigen,
		Nombre:   input.Nombre,
		UMedida:  input.UMedida,
		Precio:   int(input.Precio),
	}
	if err := s.products.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Int("id", product.ID).Str("nombre", product.Nombre).Msg("product created")
	return &domain.ProductWithMarket{Product: *product, Mercado: market.Nombre}, nil
}

// UpdateProduct applies a partial patch to an existing product. Only the
// supplied fields change; a patch with no fields is rejected, and a changed
// market reference is validated exactly as on create.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int, input ports.UpdateProductInput) (*domain.ProductWithMarket, error) {
	if input.Nombre == nil && input.IDOrigen == nil && input.UMedida == nil && input.Precio == nil {
		return nil, domain.ErrNoFieldsToUpdate
	}

	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := existing.Product
	mercado := existing.Mercado

	if input.IDOrigen != nil {
		market, err := s.markets.FindByID(ctx, *input.IDOrigen)
		if err != nil {
			return nil, err
		}
		updated.IDOrigen = market.ID
		mercado = market.Nombre
	}
	if input.Precio != nil {
		if *input.Precio < 0 {
			return nil, domain.ErrInvalidPrice
		}
		updated.Precio = int(*input.Precio)
	}
	if input.Nombre != nil {
		updated.Nombre = *input.Nombre
	}
	if input.UMedida != nil {
		updated.UMedida = *input.UMedida
	}

	if err := s.products.Update(ctx, &updated); err != nil {
		s.logger.Error().Err(err).Int("id", id).Msg("failed to update product")
		return nil, err
	}

	s.logger.Info().Int("id", id).Msg("product updated")
	return &domain.ProductWithMarket{Product: updated, Mercado: mercado}, nil
}

// DeleteProduct removes the row physically and returns the snapshot taken
// before deletion.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int) (*domain.ProductWithMarket, error) {
	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Int("id", id).Msg("failed to delete product")
		return nil, err
	}

	s.logger.Info().Int("id", id).Msg("product deleted")
	return existing, nil
}

// ListMarkets returns every market row.
func (s *CatalogService) ListMarkets(ctx context.Context) ([]domain.Market, error) {
	markets, err := s.markets.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list markets")
		return nil, err
	}
	return markets, nil
}
