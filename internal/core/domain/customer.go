package domain

import "time"

// Customer is a storefront shopper account. ID is the storage identifier
// carried in customer tokens; CustomerID is the public UUID.
type Customer struct {
	ID           string    `json:"_id"`
	CustomerID   string    `json:"customerId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PhoneNumber  string    `json:"phoneNumber"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CustomerChanges lists the attributes an update writes. Nil fields are left
// untouched in storage, which keeps an unchanged password hash byte-identical.
type CustomerChanges struct {
	Name         *string
	Email        *string
	PhoneNumber  *string
	PasswordHash *string
	UpdatedAt    time.Time
}

// Empty reports whether no attribute would change.
func (c CustomerChanges) Empty() bool {
	return c.Name == nil && c.Email == nil && c.PhoneNumber == nil && c.PasswordHash == nil
}
