package models

// Role classifies an authenticated caller.
type Role string

const (
	RoleMember Role = "member"
	RoleMentor Role = "mentor"
	RoleAdmin  Role = "admin"
	// RoleSystem is used internally for automatic transitions (completion
	// sweep); it is never minted into a token.
	RoleSystem Role = "system"
)

// ValidRole reports whether r is a role the auth collaborator may supply.
func ValidRole(r Role) bool {
	switch r {
	case RoleMember, RoleMentor, RoleAdmin:
		return true
	}
	return false
}

// Actor is the authenticated caller of an engine operation. It is supplied
// by the auth collaborator and passed explicitly into every call; the engine
// never fetches it itself.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// System returns the internal actor used for automatic transitions.
func System() Actor {
	return Actor{ID: "system", Role: RoleSystem}
}
