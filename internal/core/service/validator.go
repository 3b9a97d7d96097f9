package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/beautyshop/storefront-api/internal/core/domain"
)

var adminIDPattern = regexp.MustCompile(`^\d{5}$`)

// inputValidator runs go-playground/validator over service inputs and turns
// failures into a domain.ValidationError before anything is written.
type inputValidator struct {
	v *validator.Validate
}

func newInputValidator() *inputValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("adminid", func(fl validator.FieldLevel) bool {
		return adminIDPattern.MatchString(fl.Field().String())
	})
	return &inputValidator{v: v}
}

var validate = newInputValidator()

func (iv *inputValidator) Struct(i any) error {
	err := iv.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	verr := &domain.ValidationError{Fields: make([]domain.FieldError, 0, len(ve))}
	for _, fe := range ve {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: fe.Field(), Message: fieldError(fe)})
	}
	return verr
}

// fieldError converts a single validator failure into a readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "e164":
		return field + " must be a valid phone number"
	case "adminid":
		return fmt.Sprintf("%v is not a valid 5-digit admin ID", fe.Value())
	case "min":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
		case reflect.Slice:
			return fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must not be negative", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
