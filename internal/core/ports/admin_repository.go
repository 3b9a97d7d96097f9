package ports

import (
	"context"

	"github.com/beautyshop/storefront-api/internal/core/domain"
)

// AdminRepository persists back-office accounts.
type AdminRepository interface {
	// Create fails with domain.ErrAdminIDTaken or domain.ErrAdminEmailTaken.
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	// FindByEmail matches any entry of the admin's email list.
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
}
