package rbac

// Console role names. Keep these stable; they are part of auth/RBAC contracts.
//
// viewer: read-only access to campaigns.
// operator: may cancel and retry campaigns.
// admin: full access, bypasses role checks.
const (
	RoleViewer   = "viewer"
	RoleOperator = "operator"
	RoleAdmin    = "admin"
)

func IsAdmin(role string) bool { return role == RoleAdmin }

func IsKnownRole(role string) bool {
	switch role {
	case RoleViewer, RoleOperator, RoleAdmin:
		return true
	default:
		return false
	}
}
