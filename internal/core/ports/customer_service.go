package ports

import (
	"context"

	"github.com/beautyshop/storefront-api/internal/core/domain"
)

// UpdateCustomerInput carries a partial update. Empty strings leave the
// attribute unchanged. Password is nil when the caller did not send one; a
// non-empty value is a password change and gets hashed.
type UpdateCustomerInput struct {
	Name        string  `json:"name"        validate:"omitempty,min=3"`
	Email       string  `json:"email"       validate:"omitempty,email"`
	PhoneNumber string  `json:"phoneNumber" validate:"omitempty,e164"`
	Password    *string `json:"password"    validate:"omitempty,min=6"`
}

type CustomerService interface {
	Get(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	Update(ctx context.Context, id string, in UpdateCustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
}
