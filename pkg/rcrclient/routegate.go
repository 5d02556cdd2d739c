package rcrclient

import "strings"

// Route paths the gate knows about.
const (
	PathLogin             = "/login"
	PathSignup            = "/signup"
	PathDashboard         = "/dashboard"
	PathStudentDashboard  = "/dashboard/student"
	PathEducatorDashboard = "/dashboard/educator"
	PathAdminDashboard    = "/dashboard/admin"
)

// Decision is the outcome of gating a navigation.
type Decision struct {
	Allow    bool
	Redirect string
}

func allow() Decision             { return Decision{Allow: true} }
func redirect(to string) Decision { return Decision{Redirect: to} }

// routeRule pins a path prefix to the roles that may enter it. An empty
// roles set means any signed-in user.
type routeRule struct {
	prefix string
	roles  []string
}

// Longest prefixes first so /dashboard/admin wins over /dashboard.
var protectedRoutes = []routeRule{
	{prefix: "/dashboard/student", roles: []string{"student"}},
	{prefix: "/dashboard/educator", roles: []string{"educator", "admin"}},
	{prefix: "/dashboard/admin", roles: []string{"admin"}},
	{prefix: "/dashboard", roles: nil},
	{prefix: "/liveclass/manage", roles: []string{"educator", "admin"}},
	{prefix: "/liveclass", roles: []string{"student"}},
	{prefix: "/assignments/manage", roles: []string{"educator", "admin"}},
	{prefix: "/assignments", roles: []string{"student"}},
	{prefix: "/attendance/manage", roles: []string{"educator", "admin"}},
	{prefix: "/attendance", roles: []string{"student"}},
	{prefix: "/grades/manage", roles: []string{"educator", "admin"}},
	{prefix: "/grades", roles: []string{"student"}},
	{prefix: "/students", roles: []string{"educator", "admin"}},
	{prefix: "/admin", roles: []string{"admin"}},
	{prefix: "/notifications", roles: nil},
	{prefix: "/sharednotes", roles: nil},
	{prefix: "/enrollment", roles: []string{"student"}},
	{prefix: "/profile", roles: nil},
}

// GateRoute decides whether a navigation to path may proceed for the given
// role. role is empty for an unauthenticated visitor. Unknown paths are
// public. The dashboard root fans out to the role's own view.
func GateRoute(path, role string) Decision {
	path = normalizePath(path)
	role = strings.ToLower(strings.TrimSpace(role))

	if path == PathLogin || path == PathSignup {
		return allow()
	}

	if path == PathDashboard {
		switch role {
		case "student":
			return redirect(PathStudentDashboard)
		case "educator":
			return redirect(PathEducatorDashboard)
		case "admin":
			return redirect(PathAdminDashboard)
		default:
			return redirect(PathLogin)
		}
	}

	for _, rule := range protectedRoutes {
		if !strings.HasPrefix(path, rule.prefix) {
			continue
		}
		if role == "" {
			return redirect(PathLogin)
		}
		if len(rule.roles) == 0 || containsRole(rule.roles, role) {
			return allow()
		}
		return redirect(PathLogin)
	}

	return allow()
}

// RedirectOnUnauthorized reports whether a 401 on a request issued from
// currentPath should push the visitor to the login page. The login and
// sign-up pages issue credential requests themselves; bouncing them back to
// login would loop.
func RedirectOnUnauthorized(currentPath string) bool {
	path := normalizePath(currentPath)
	return path != PathLogin && path != PathSignup
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}

func containsRole(roles []string, role string) bool {
	for _, candidate := range roles {
		if candidate == role {
			return true
		}
	}
	return false
}
