package ports

import (
	"context"
	"encoding/json"

	"github.com/beautyshop/storefront-api/internal/core/domain"
)

type RegisterCustomerInput struct {
	Name        string `json:"name"        validate:"required,min=3"`
	Email       string `json:"email"       validate:"required,email"`
	Password    string `json:"password"    validate:"required,min=6"`
	PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
}

// StringList accepts either a JSON string or an array of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*l = nil
		} else {
			*l = StringList{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

type RegisterAdminInput struct {
	AdminID  string     `json:"adminId"  validate:"required,adminid"`
	Email    StringList `json:"email"    validate:"required,min=1,dive,email"`
	Password string     `json:"password" validate:"required"`
	Role     string     `json:"role"     validate:"omitempty,oneof=admin superadmin"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CustomerSession is a successful customer login.
type CustomerSession struct {
	Token    string
	Customer *domain.Customer
}

// AdminSession is a successful admin login.
type AdminSession struct {
	Token string
	Admin *domain.Admin
}

type AuthService interface {
	RegisterCustomer(ctx context.Context, in RegisterCustomerInput) (*domain.Customer, error)
	LoginCustomer(ctx context.Context, in LoginInput) (*CustomerSession, error)
	RegisterAdmin(ctx context.Context, in RegisterAdminInput) (*domain.Admin, error)
	LoginAdmin(ctx context.Context, in LoginInput) (*AdminSession, error)
}
