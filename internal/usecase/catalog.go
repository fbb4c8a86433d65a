package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/maxbelov/shopgate/internal/domain/errors"
	"github.com/maxbelov/shopgate/internal/domain/model"
	"github.com/maxbelov/shopgate/internal/domain/repository"
)

// CatalogUseCase manages the product catalog.
type CatalogUseCase struct {
	products repository.ProductRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// CreateProduct validates and stores a new catalog entry.
func (u *CatalogUseCase) CreateProduct(ctx context.Context, sku, name string, priceMinor int64, currency string, stock int64) (*model.Product, error) {
	sku = strings.TrimSpace(sku)
	name = strings.TrimSpace(name)
	currency = strings.ToLower(strings.TrimSpace(currency))

	if sku == "" || name == "" || currency == "" {
		return nil, fmt.Errorf("%w: sku, name and currency are required", domainErrors.ErrInvalidProduct)
	}
	if priceMinor < 0 {
		return nil, fmt.Errorf("%w: price must be non-negative", domainErrors.ErrInvalidProduct)
	}
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock must be non-negative", domainErrors.ErrInvalidProduct)
	}

	product := &model.Product{
		ID:         uuid.NewString(),
		SKU:        sku,
		Name:       name,
		PriceMinor: priceMinor,
		Currency:   currency,
		Stock:      stock,
	}
	if err := u.products.Create(ctx, product); err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// ListProducts returns the catalog ordered by SKU.
func (u *CatalogUseCase) ListProducts(ctx context.Context) ([]model.Product, error) {
	return u.products.List(ctx)
}
