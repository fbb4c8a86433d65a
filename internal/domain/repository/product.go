package repository

import (
	"context"

	"github.com/maxbelov/shopgate/internal/domain/model"
)

// ProductRepository persists catalog entries.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	List(ctx context.Context) ([]model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
}
