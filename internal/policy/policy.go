// Package policy is the single lookup table mapping a role to the routes
// it may open, its landing route, and its visible navigation. It is pure
// and stateless; the guard and the view commands consume it.
package policy

import (
	"strings"

	"github.com/helpdesk-tools/deskctl/internal/model"
)

// RouteLogin is the only public route. An anonymous session may open
// nothing else.
const RouteLogin = "/login"

// Landing routes per role.
const (
	RouteClientHome  = "/dashboard/cliente"
	RouteSupportHome = "/dashboard/soporte"
	RouteAdminHome   = "/dashboard/admin"
)

// NavItem is a navigation action visible to a role.
type NavItem struct {
	Label string
	Path  string
}

// Policy describes what a role may see and where it lands after login.
type Policy struct {
	DefaultRoute    string
	AllowedPrefixes []string
	Nav             []NavItem
}

var byRole = map[model.Role]Policy{
	model.RoleClient: {
		DefaultRoute:    RouteClientHome,
		AllowedPrefixes: []string{RouteClientHome},
		Nav: []NavItem{
			{Label: "Dashboard", Path: RouteClientHome},
			{Label: "Nueva Solicitud", Path: RouteClientHome + "/nueva-solicitud"},
			{Label: "Mis Solicitudes", Path: RouteClientHome + "/mis-solicitudes"},
			{Label: "Mi Perfil", Path: RouteClientHome + "/perfil"},
		},
	},
	model.RoleSupport: {
		DefaultRoute:    RouteSupportHome,
		AllowedPrefixes: []string{RouteSupportHome},
		Nav: []NavItem{
			{Label: "Dashboard", Path: RouteSupportHome},
			{Label: "Todas las Solicitudes", Path: RouteSupportHome + "/todas"},
			{Label: "Mi Perfil", Path: RouteSupportHome + "/perfil"},
		},
	},
	model.RoleAdmin: {
		DefaultRoute:    RouteAdminHome,
		AllowedPrefixes: []string{RouteAdminHome},
		Nav: []NavItem{
			{Label: "Dashboard", Path: RouteAdminHome},
			{Label: "Todas las Solicitudes", Path: RouteAdminHome + "/solicitudes"},
			{Label: "Usuarios", Path: RouteAdminHome + "/usuarios"},
			{Label: "Reportes", Path: RouteAdminHome + "/reportes"},
		},
	},
}

// For returns the policy for a role. Unknown roles get no access at all
// (fail closed), reported through ok=false.
func For(role model.Role) (Policy, bool) {
	p, ok := byRole[role]
	return p, ok
}

// Anonymous returns the policy applied when no session exists: the login
// route only.
func Anonymous() Policy {
	return Policy{
		DefaultRoute:    RouteLogin,
		AllowedPrefixes: []string{RouteLogin},
	}
}

// Allows reports whether the policy grants access to the given path,
// matched by route prefix.
func (p Policy) Allows(path string) bool {
	for _, prefix := range p.AllowedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// Public reports whether the path needs no session.
func Public(path string) bool {
	return path == RouteLogin
}
