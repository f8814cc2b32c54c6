package auth

import (
	"net/http"
	"strings"
)

// Action is a permission checked against a role's action set.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionAssign Action = "assign"
)

var rolePermissions = map[Role]map[Action]struct{}{
	RoleAdmin: {
		ActionCreate: {},
		ActionRead:   {},
		ActionUpdate: {},
		ActionDelete: {},
		ActionAssign: {},
	},
	RoleInspector: {
		ActionRead:   {},
		ActionUpdate: {},
	},
	RoleEngineer: {
		ActionRead:   {},
		ActionUpdate: {},
	},
}

// Allows reports whether role's action set contains action. Unknown roles
// allow nothing.
func Allows(role Role, action Action) bool {
	actions, ok := rolePermissions[role]
	if !ok {
		return false
	}
	_, ok = actions[action]
	return ok
}

// HasPermission is the nil-safe user wrapper around Allows.
func HasPermission(user *User, action Action) bool {
	if user == nil {
		return false
	}
	return Allows(user.Role, action)
}

// Route prefixes open to any authenticated user; everything outside the
// admin prefix falls through to allow.
var sharedRoutePrefixes = []string{"/dashboard", "/ships", "/jobs", "/calendar"}

var adminRoutePrefixes = []string{"/admin"}

// CanAccessRoute reports whether user may access a route. Absent user denies
// everything; the admin prefix requires the Admin role; any other route is
// allowed for any authenticated user.
func CanAccessRoute(user *User, route string) bool {
	if user == nil {
		return false
	}
	for _, prefix := range sharedRoutePrefixes {
		if strings.HasPrefix(route, prefix) {
			return true
		}
	}
	for _, prefix := range adminRoutePrefixes {
		if strings.HasPrefix(route, prefix) {
			return user.Role == RoleAdmin
		}
	}
	return true
}

// Policy resolves the required action and route for API requests.
type Policy struct {
	ExemptPaths map[string]struct{}
}

// NewDefaultPolicy builds a policy with auth-exempt paths.
func NewDefaultPolicy(exemptPaths []string) Policy {
	set := make(map[string]struct{}, len(exemptPaths))
	for _, path := range exemptPaths {
		set[path] = struct{}{}
	}
	return Policy{ExemptPaths: set}
}

// IsExempt returns true when a request should skip authentication.
func (p Policy) IsExempt(r *http.Request) bool {
	if r == nil {
		return true
	}
	_, ok := p.ExemptPaths[r.URL.Path]
	return ok
}

// Route maps an API path to the route consulted by CanAccessRoute.
func (p Policy) Route(r *http.Request) string {
	if r == nil {
		return ""
	}
	return strings.TrimPrefix(r.URL.Path, "/api/v1")
}

// RequiredAction resolves the action a request must be permitted to perform.
func (p Policy) RequiredAction(r *http.Request) Action {
	if r == nil {
		return ActionRead
	}
	path := r.URL.Path
	method := r.Method

	switch {
	case path == "/api/v1/auth/logout":
		// Ending a session is open to every authenticated role.
		return ActionRead
	case strings.HasPrefix(path, "/api/v1/notifications"):
		// The feed is personal: marking read and dismissing are feed
		// management, not entity deletion.
		if method == http.MethodGet {
			return ActionRead
		}
		return ActionUpdate
	}

	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return ActionRead
	case http.MethodPost:
		return ActionCreate
	case http.MethodPut, http.MethodPatch:
		return ActionUpdate
	case http.MethodDelete:
		return ActionDelete
	default:
		return ActionRead
	}
}
