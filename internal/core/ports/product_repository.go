package ports

import (
	"context"

	"github.com/beautyshop/storefront-api/internal/core/domain"
)

// ProductFilter narrows List. Zero values mean no filter.
type ProductFilter struct {
	InStockOnly bool
	Category    domain.Category
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	// Featured returns the newest in-stock product of each category, at most limit.
	Featured(ctx context.Context, limit int) ([]*domain.Product, error)
	Update(ctx context.Context, id string, changes domain.ProductChanges) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
