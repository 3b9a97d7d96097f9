package domain

// PrincipalKind tags which gate a token was issued for.
type PrincipalKind string

const (
	PrincipalCustomer PrincipalKind = "customer"
	PrincipalAdmin    PrincipalKind = "admin"
)

// Principal is the authenticated identity attached to a request by a gate.
type Principal struct {
	ID   string
	Kind PrincipalKind
	Role Role // admins only
}
