package ports

import (
	"context"

	"github.com/beautyshop/storefront-api/internal/core/domain"
)

// CustomerRepository persists customer accounts. Email uniqueness is enforced
// by the store; Create reports a violation as domain.ErrCustomerExists.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	// Update writes only the non-nil fields of changes and returns the stored record.
	Update(ctx context.Context, id string, changes domain.CustomerChanges) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
}
