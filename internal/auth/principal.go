package auth

// Role is one of the two fixed authorities the service knows about.
type Role string

const (
	// RoleSociete marks users affiliated with a society who submit documents.
	RoleSociete Role = "ROLE_SOCIETE"
	// RoleComptable marks accountants who review and validate documents.
	RoleComptable Role = "ROLE_COMPTABLE"
)

// Valid reports whether the role is one of the known authorities.
func (r Role) Valid() bool {
	return r == RoleSociete || r == RoleComptable
}

// ParseRoles converts role names into the closed enumeration, dropping
// anything unknown.
func ParseRoles(names []string) []Role {
	var roles []Role
	for _, name := range names {
		r := Role(name)
		if r.Valid() {
			roles = append(roles, r)
		}
	}
	return roles
}

// RoleNames returns the string form of a role set, for token claims and
// response bodies.
func RoleNames(roles []Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}

// Principal is the authenticated identity attached to a request. It is
// built fresh per request from a verified token or a credential check
// and discarded with the request context; nothing session-like is kept.
type Principal struct {
	Email string
	Roles []Role
}

// HasRole reports whether the principal holds the given role.
func (p Principal) HasRole(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
