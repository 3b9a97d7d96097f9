package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
)

var (
	ErrCustomerNotFound = &NotFoundError{Message: "Customer not found"}
	ErrProductNotFound  = &NotFoundError{Message: "Product not found"}
	ErrOrderNotFound    = &NotFoundError{Message: "Order not found"}
	ErrAdminNotFound    = &NotFoundError{Message: "Admin not found"}

	ErrCustomerExists  = &ConflictError{Message: "User already exists"}
	ErrAdminIDTaken    = &ConflictError{Message: "Admin ID is already registered"}
	ErrAdminEmailTaken = &ConflictError{Message: "Admin email is already registered"}
)

// NotFoundError names the missing record. It matches ErrNotFound.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConflictError reports a uniqueness violation. It matches ErrDuplicateKey.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }
func (e *ConflictError) Unwrap() error { return ErrDuplicateKey }
