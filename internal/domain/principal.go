package domain

// Principal is the already-authenticated caller of a scoped operation.
type Principal struct {
	ID    string
	Roles Roles
}

func (p Principal) HasAnyRole(roles ...Role) bool {
	return p.Roles.Overlaps(Roles(roles))
}

// IsElevated reports whether the principal may act across owners.
func (p Principal) IsElevated() bool {
	return p.HasAnyRole(RoleAdmin, RoleSuperUser)
}
