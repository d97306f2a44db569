// Package identity carries the authenticated caller through service
// calls. Handlers build a Requester from the verified JWT claims;
// services authorize against it instead of re-reading the token.
package identity

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

type Requester struct {
	UserID     string
	EmployeeID string
	CompanyID  string
	Role       Role
}

// IsAdmin reports whether the requester holds the admin role.
func (r Requester) IsAdmin() bool {
	return r.Role == RoleAdmin
}
