package model

// Principal is the authenticated identity attached to a request. It is
// threaded explicitly through handlers and tool calls rather than stored in
// any global context.
type Principal struct {
	ID       string
	Username string
	Email    string
	Roles    []Role
}

func (p *Principal) HasRole(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (p *Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}
