package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/beautyshop/storefront-api/internal/core/domain"
	"github.com/beautyshop/storefront-api/internal/core/ports"
	"github.com/beautyshop/storefront-api/internal/pkg/password"
)

type customerService struct {
	repo   ports.CustomerRepository
	hasher password.Hasher
	log    zerolog.Logger
	now    func() time.Time
}

// NewCustomerService returns a CustomerService implementation.
func NewCustomerService(repo ports.CustomerRepository, hasher password.Hasher, log zerolog.Logger) ports.CustomerService {
	return &customerService{repo: repo, hasher: hasher, log: log, now: time.Now}
}

func (s *customerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *customerService) List(ctx context.Context) ([]*domain.Customer, error) {
	return s.repo.List(ctx)
}

// Update applies a partial change. The stored hash is only rewritten when a
// non-empty password is supplied, so an update that omits it cannot re-hash
// the existing hash.
func (s *customerService) Update(ctx context.Context, id string, in ports.UpdateCustomerInput) (*domain.Customer, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	if in.Password != nil && *in.Password == "" {
		in.Password = nil
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	changes := domain.CustomerChanges{UpdatedAt: s.now().UTC()}
	if in.Name != "" {
		changes.Name = &in.Name
	}
	if in.Email != "" {
		changes.Email = &in.Email
	}
	if in.PhoneNumber != "" {
		changes.PhoneNumber = &in.PhoneNumber
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("update customer: %w", err)
		}
		changes.PasswordHash = &hash
	}

	if changes.Empty() {
		return s.repo.FindByID(ctx, id)
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("customer_id", updated.CustomerID).
		Bool("password_changed", changes.PasswordHash != nil).
		Msg("customer updated")
	return updated, nil
}

func (s *customerService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("customer deleted")
	return nil
}
