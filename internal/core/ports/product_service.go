package ports

import (
	"context"
	"io"

	"github.com/beautyshop/storefront-api/internal/core/domain"
)

// ImageUpload is an uploaded file as received by the transport layer.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

type CreateProductInput struct {
	Name        string       `json:"name"        validate:"required"`
	Price       float64      `json:"price"       validate:"required,gt=0"`
	Description string       `json:"description" validate:"required"`
	Stock       int          `json:"stock"       validate:"gte=0"`
	Category    string       `json:"category"    validate:"required,oneof=skincare makeup haircare fragrance"`
	Image       *ImageUpload `json:"-"           validate:"-"`
}

// UpdateProductInput is a truthy merge: empty strings and nil numbers keep
// the stored value. A new Image replaces the image list.
type UpdateProductInput struct {
	Name        string       `json:"name"`
	Price       *float64     `json:"price"       validate:"omitempty,gt=0"`
	Description string       `json:"description"`
	Stock       *int         `json:"stock"       validate:"omitempty,gte=0"`
	Category    string       `json:"category"    validate:"omitempty,oneof=skincare makeup haircare fragrance"`
	Image       *ImageUpload `json:"-"           validate:"-"`
}

type ProductService interface {
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	Featured(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, id string, in UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
