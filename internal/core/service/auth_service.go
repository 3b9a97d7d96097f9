package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/beautyshop/storefront-api/internal/core/domain"
	"github.com/beautyshop/storefront-api/internal/core/ports"
	"github.com/beautyshop/storefront-api/internal/pkg/password"
)

// TokenIssuer signs the tokens handed out on login.
type TokenIssuer interface {
	IssueCustomer(customerID string) (string, error)
	IssueAdmin(adminID, role string) (string, error)
}

type authService struct {
	customers ports.CustomerRepository
	admins    ports.AdminRepository
	hasher    password.Hasher
	tokens    TokenIssuer
	log       zerolog.Logger
	now       func() time.Time

	// decoyHash is compared against when the email is unknown so both login
	// failure paths pay for one bcrypt comparison.
	decoyHash string
}

// NewAuthService returns an AuthService implementation.
func NewAuthService(
	customers ports.CustomerRepository,
	admins ports.AdminRepository,
	hasher password.Hasher,
	tokens TokenIssuer,
	log zerolog.Logger,
) ports.AuthService {
	decoy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		log.Warn().Err(err).Msg("could not prepare decoy hash")
	}
	return &authService{
		customers: customers,
		admins:    admins,
		hasher:    hasher,
		tokens:    tokens,
		log:       log,
		now:       time.Now,
		decoyHash: decoy,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) RegisterCustomer(ctx context.Context, in ports.RegisterCustomerInput) (*domain.Customer, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register customer: %w", err)
	}

	now := s.now().UTC()
	created, err := s.customers.Create(ctx, &domain.Customer{
		CustomerID:   uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		PhoneNumber:  in.PhoneNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, err
		}
		return nil, fmt.Errorf("register customer: %w", err)
	}

	s.log.Info().Str("customer_id", created.CustomerID).Msg("customer registered")
	created.PasswordHash = ""
	return created, nil
}

func (s *authService) LoginCustomer(ctx context.Context, in ports.LoginInput) (*ports.CustomerSession, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	customer, err := s.customers.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.hasher.Verify(s.decoyHash, in.Password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login customer: %w", err)
	}
	if !s.hasher.Verify(customer.PasswordHash, in.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.IssueCustomer(customer.ID)
	if err != nil {
		return nil, fmt.Errorf("login customer: %w", err)
	}
	customer.PasswordHash = ""
	return &ports.CustomerSession{Token: signed, Customer: customer}, nil
}

func (s *authService) RegisterAdmin(ctx context.Context, in ports.RegisterAdminInput) (*domain.Admin, error) {
	in.AdminID = strings.TrimSpace(in.AdminID)
	for i, e := range in.Email {
		in.Email[i] = normalizeEmail(e)
	}
	if in.Role == "" {
		in.Role = string(domain.RoleAdmin)
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register admin: %w", err)
	}

	created, err := s.admins.Create(ctx, &domain.Admin{
		AdminID:      in.AdminID,
		Emails:       []string(in.Email),
		PasswordHash: hash,
		Role:         domain.Role(in.Role),
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, err
		}
		return nil, fmt.Errorf("register admin: %w", err)
	}

	s.log.Info().Str("admin_id", created.AdminID).Str("role", string(created.Role)).Msg("admin registered")
	created.PasswordHash = ""
	return created, nil
}

func (s *authService) LoginAdmin(ctx context.Context, in ports.LoginInput) (*ports.AdminSession, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.hasher.Verify(s.decoyHash, in.Password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login admin: %w", err)
	}
	if !s.hasher.Verify(admin.PasswordHash, in.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	if !admin.Role.Valid() {
		s.log.Warn().Str("admin_id", admin.AdminID).Str("role", string(admin.Role)).Msg("admin login refused for role")
		return nil, domain.ErrForbidden
	}

	signed, err := s.tokens.IssueAdmin(admin.ID, string(admin.Role))
	if err != nil {
		return nil, fmt.Errorf("login admin: %w", err)
	}
	admin.PasswordHash = ""
	return &ports.AdminSession{Token: signed, Admin: admin}, nil
}
