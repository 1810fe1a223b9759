package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helpdesk-tools/deskctl/internal/model"
	"github.com/helpdesk-tools/deskctl/internal/policy"
)

func sessionWith(role model.Role) *model.Session {
	return &model.Session{ID: "u-1", Name: "Test", Email: "t@example.com", Role: role, Token: "tok"}
}

func TestAnonymousNavigation(t *testing.T) {
	assert.Equal(t, Decision{Action: Render}, Evaluate(nil, policy.RouteLogin))

	for _, path := range []string{
		policy.RouteClientHome,
		policy.RouteSupportHome,
		policy.RouteAdminHome + "/usuarios",
		"/nonexistent",
	} {
		dec := Evaluate(nil, path)
		assert.Equal(t, RedirectLogin, dec.Action, "anonymous must be sent to login from %s", path)
		assert.Equal(t, policy.RouteLogin, dec.Target)
	}
}

// Every (role, route) pair renders iff the route is in the role's allowed
// set; otherwise navigation lands on the role's default route, never on
// an error view.
func TestRoleRouteGrid(t *testing.T) {
	routes := []string{
		policy.RouteClientHome,
		policy.RouteClientHome + "/nueva-solicitud",
		policy.RouteClientHome + "/mis-solicitudes/req-9",
		policy.RouteSupportHome,
		policy.RouteSupportHome + "/todas",
		policy.RouteAdminHome,
		policy.RouteAdminHome + "/usuarios",
		policy.RouteAdminHome + "/reportes",
	}

	for _, role := range model.Roles {
		pol, _ := policy.For(role)
		for _, route := range routes {
			dec := Evaluate(sessionWith(role), route)
			if pol.Allows(route) {
				assert.Equal(t, Render, dec.Action, "%s should render %s", role, route)
			} else {
				assert.Equal(t, RedirectDefault, dec.Action, "%s should be redirected from %s", role, route)
				assert.Equal(t, pol.DefaultRoute, dec.Target)
			}
		}
	}
}

func TestAuthenticatedUserSkipsLogin(t *testing.T) {
	dec := Evaluate(sessionWith(model.RoleSupport), policy.RouteLogin)
	assert.Equal(t, RedirectDefault, dec.Action)
	assert.Equal(t, policy.RouteSupportHome, dec.Target)
}

func TestUnknownRoleFailsClosed(t *testing.T) {
	dec := Evaluate(sessionWith(model.Role("SUPERUSER")), policy.RouteAdminHome)
	assert.Equal(t, RedirectLogin, dec.Action)
}

// Login scenario: a CLIENT session renders its own dashboard and is sent
// back to it when requesting the admin dashboard.
func TestClientDashboardScenario(t *testing.T) {
	sess := &model.Session{
		ID:    "u-1",
		Name:  "Juan Pérez",
		Email: "juan.perez@example.com",
		Role:  model.RoleClient,
		Token: "tok",
	}

	assert.Equal(t, Decision{Action: Render}, Evaluate(sess, policy.RouteClientHome))

	dec := Evaluate(sess, policy.RouteAdminHome)
	assert.Equal(t, RedirectDefault, dec.Action)
	assert.Equal(t, policy.RouteClientHome, dec.Target)
}
