package auth

// Role represents a user role.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleInspector Role = "Inspector"
	RoleEngineer  Role = "Engineer"
)

// NormalizeRole validates and normalizes a role string.
func NormalizeRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleAdmin, RoleInspector, RoleEngineer:
		return Role(value), true
	default:
		return "", false
	}
}
