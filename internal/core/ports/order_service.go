package ports

import (
	"context"

	"github.com/beautyshop/storefront-api/internal/core/domain"
)

type OrderItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"  validate:"required,min=1"`
}

type PlaceOrderInput struct {
	CustomerID     string           `json:"-"`
	IdempotencyKey string           `json:"-"`
	PhoneNumber    string           `json:"phoneNumber" validate:"required"`
	Email          string           `json:"email"       validate:"required,email"`
	Products       []OrderItemInput `json:"products"    validate:"required,min=1,dive"`
	TotalAmount    float64          `json:"totalAmount" validate:"required,gt=0"`
}

// PlaceOrderResult reports whether the order was replayed from an earlier
// request carrying the same Idempotency-Key.
type PlaceOrderResult struct {
	Order    *domain.Order
	Replayed bool
}

type OrderService interface {
	Place(ctx context.Context, in PlaceOrderInput) (*PlaceOrderResult, error)
	GetForCustomer(ctx context.Context, id, customerID string) (*domain.Order, error)
	ListForCustomer(ctx context.Context, customerID string) ([]*domain.Order, error)

	ListAll(ctx context.Context) ([]*domain.Order, error)
	GetDetail(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id, status, actor string) (*domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id, status, actor string) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
	MonthlySales(ctx context.Context) ([]domain.MonthlySales, error)
	StatusDistribution(ctx context.Context) ([]domain.StatusCount, error)
}
