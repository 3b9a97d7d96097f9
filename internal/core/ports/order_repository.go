package ports

import (
	"context"

	"github.com/beautyshop/storefront-api/internal/core/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// FindByID retrieves an order. When customerID is non-empty the lookup is
	// scoped to that customer's orders.
	FindByID(ctx context.Context, id, customerID string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Order, error)
	Delete(ctx context.Context, id string) error

	// MonthlySales sums total_amount per calendar month of year, skipping
	// cancelled orders. Months without sales are absent.
	MonthlySales(ctx context.Context, year int) ([]MonthTotal, error)
	StatusDistribution(ctx context.Context) ([]domain.StatusCount, error)
}

// MonthTotal is a raw aggregation row; Month is 1-12.
type MonthTotal struct {
	Month int
	Sales float64
}
