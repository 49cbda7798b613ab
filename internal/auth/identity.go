package auth

import "fmt"

// Role is the closed set of caller roles recognised by the service.
type Role string

const (
	RoleAdmin            Role = "Admin"
	RoleCarManager       Role = "CarManager"
	RoleMotorbikeManager Role = "MotorbikeManager"
	RoleCustomer         Role = "Customer"
)

// IsValid returns true if the role is a recognised role.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCarManager, RoleMotorbikeManager, RoleCustomer:
		return true
	}
	return false
}

// IsStaff returns true for roles that manage inventory and approvals.
func (r Role) IsStaff() bool {
	switch r {
	case RoleAdmin, RoleCarManager, RoleMotorbikeManager:
		return true
	}
	return false
}

// String returns the string representation of the role.
func (r Role) String() string { return string(r) }

// ParseRole converts a string to a Role, returning an error if invalid.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return role, nil
}

// Identity is the authenticated-caller descriptor attached to each request.
// It is immutable for the lifetime of a request and derived from the
// presented credential, never from the request body.
type Identity struct {
	Role   Role   `json:"role"`
	UserID string `json:"user_id"`
}
