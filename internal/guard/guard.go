// Package guard decides, per navigation, whether a view renders or the
// user is redirected. It is the only client-side authorization check;
// the API enforces the real boundary and the guard exists to route users
// correctly without flashing views they cannot use.
package guard

import (
	"github.com/helpdesk-tools/deskctl/internal/model"
	"github.com/helpdesk-tools/deskctl/internal/policy"
)

// Action is the outcome of a guard evaluation.
type Action int

const (
	// Render means the requested view may be shown.
	Render Action = iota
	// RedirectLogin means no valid session exists for a protected view.
	RedirectLogin
	// RedirectDefault means the session's role cannot open the requested
	// view and navigation lands on the role's default route instead.
	RedirectDefault
)

// Decision carries the action and, for redirects, the target route.
type Decision struct {
	Action Action
	Target string
}

// Evaluate applies the route policy to a navigation. It is deterministic,
// has no side effects, and never mutates the session store. A nil session
// is anonymous; a session with an unknown role is treated the same way.
func Evaluate(sess *model.Session, path string) Decision {
	if sess == nil || !sess.Role.Valid() {
		if policy.Public(path) {
			return Decision{Action: Render}
		}
		return Decision{Action: RedirectLogin, Target: policy.RouteLogin}
	}

	pol, ok := policy.For(sess.Role)
	if !ok {
		// Defined-but-unmapped role: fail closed.
		return Decision{Action: RedirectLogin, Target: policy.RouteLogin}
	}

	// A logged-in user never re-sees a public-only view.
	if policy.Public(path) {
		return Decision{Action: RedirectDefault, Target: pol.DefaultRoute}
	}

	if pol.Allows(path) {
		return Decision{Action: Render}
	}
	return Decision{Action: RedirectDefault, Target: pol.DefaultRoute}
}
