package domain

import "strings"

// Role is a permission tag attached to a dashboard user. The guard compares
// roles as plain upper-case strings, matching what the identity service puts
// into the token.
type Role string

const (
	RoleAdmin         Role = "ADMIN"
	RoleAdvertiser    Role = "ADVERTISER"
	RoleAgencyManager Role = "AGENCY_MANAGER"
)

// ParseRole normalises a raw role claim. Unknown values are returned
// upper-cased so they still compare deterministically.
func ParseRole(s string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(s)))
}

// String returns a human readable label for the role.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleAdvertiser:
		return "Advertiser"
	case RoleAgencyManager:
		return "Agency Manager"
	default:
		return string(r)
	}
}
