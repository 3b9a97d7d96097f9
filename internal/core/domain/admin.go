package domain

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// AdminRoles is every role allowed into the back-office.
var AdminRoles = []Role{RoleAdmin, RoleSuperAdmin}

// Valid reports whether r is one of the known admin roles.
func (r Role) Valid() bool {
	for _, known := range AdminRoles {
		if r == known {
			return true
		}
	}
	return false
}

// Admin is a back-office account. AdminID is the externally assigned
// five-digit code, kept as text so leading zeros survive.
type Admin struct {
	ID           string    `json:"_id"`
	AdminID      string    `json:"adminId"`
	Emails       []string  `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
