package entity

// Role names carried in the identity provider's token
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Principal is the authenticated caller of a request
type Principal struct {
	Subject string
	Role    string
}

// IsAdmin checks if the principal has the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
