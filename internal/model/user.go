package model

import "strings"

// Role is the closed set of roles a user can hold. Legacy records and
// registration payloads spell roles several ways ("ROLE_CLIENT", "client",
// "CLIENT"); ParseRole is the single place those spellings are mapped.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
	RoleUser   Role = "user"
)

// ParseRole maps an external role spelling to the canonical enum.
// Unknown values fall back to RoleUser, matching the registration default.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "ROLE_")) {
	case "admin", "role_admin":
		return RoleAdmin
	case "client", "role_client":
		return RoleClient
	default:
		return RoleUser
	}
}

// ParseRoles maps a set of external role spellings, deduplicated.
// A nil or empty input yields the default role set [user].
func ParseRoles(strs []string) []Role {
	if len(strs) == 0 {
		return []Role{RoleUser}
	}
	seen := make(map[Role]bool, len(strs))
	var roles []Role
	for _, s := range strs {
		r := ParseRole(s)
		if !seen[r] {
			seen[r] = true
			roles = append(roles, r)
		}
	}
	return roles
}

// RoleNames converts roles back to their wire representation.
func RoleNames(roles []Role) []string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, string(r))
	}
	return names
}

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	FullName     string `json:"fullName"`
	CompanyName  string `json:"companyName"`
	Roles        []Role `json:"roles"`
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
