package domain

import "time"

// Role enumerates access levels for profiles.
type Role string

const (
	RoleEndUser      Role = "END_USER"
	RoleSupportAgent Role = "SUPPORT_AGENT"
	RoleAdmin        Role = "ADMIN"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleEndUser, RoleSupportAgent, RoleAdmin:
		return true
	}
	return false
}

// Elevated reports whether the role may triage tickets.
func (r Role) Elevated() bool {
	return r == RoleSupportAgent || r == RoleAdmin
}

// Profile is the domain model for an authenticated identity.
type Profile struct {
	ID               string
	Name             string
	Email            string
	PasswordHash     string
	Role             Role
	Language         string
	CategoryInterest *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
