// Package dashboard renders the per-role home views and owns the shared
// navigation gate used by every other command group.
package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/helpdesk-tools/deskctl/internal/api"
	"github.com/helpdesk-tools/deskctl/internal/config"
	"github.com/helpdesk-tools/deskctl/internal/guard"
	"github.com/helpdesk-tools/deskctl/internal/model"
	"github.com/helpdesk-tools/deskctl/internal/policy"
)

// ErrNotLoggedIn is returned whenever a protected view is requested
// without a session.
var ErrNotLoggedIn = errors.New("not logged in; run 'deskctl auth login' first")

// DashboardCmd is the parent command for dashboard views. Run bare, it
// routes to the session's own dashboard.
var DashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open your role's dashboard",
	Long:  `Renders the dashboard for the logged-in role: client, support, or admin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		sess, err := cfg.Sessions.Current()
		if err != nil || sess == nil {
			return ErrNotLoggedIn
		}
		pol, ok := policy.For(sess.Role)
		if !ok {
			return ErrNotLoggedIn
		}
		return Render(cmd.Context(), sess, pol.DefaultRoute)
	},
}

func init() {
	DashboardCmd.AddCommand(clienteCmd)
	DashboardCmd.AddCommand(soporteCmd)
	DashboardCmd.AddCommand(adminCmd)
	DashboardCmd.AddCommand(reportesCmd)
}

// GateView applies the route guard to a requested view. It returns the
// session and true when the view may proceed. When the role is redirected,
// the target dashboard is rendered here and proceed is false with a nil
// error; an anonymous caller gets ErrNotLoggedIn.
func GateView(ctx context.Context, path string) (*model.Session, bool, error) {
	cfg := config.MustFromContext(ctx)
	sess, err := cfg.Sessions.Current()
	if err != nil {
		sess = nil
	}

	dec := guard.Evaluate(sess, path)
	switch dec.Action {
	case guard.Render:
		return sess, true, nil
	case guard.RedirectLogin:
		return nil, false, ErrNotLoggedIn
	default:
		pterm.Warning.Printf("Your role cannot open %s; showing %s instead.\n", path, dec.Target)
		return sess, false, Render(ctx, sess, dec.Target)
	}
}

// GateByRole guards a view whose route depends on the caller's own role.
// Anonymous callers gate against the client route, which is protected, so
// the guard sends them to login.
func GateByRole(ctx context.Context, routeFor func(model.Role) string) (*model.Session, bool, error) {
	cfg := config.MustFromContext(ctx)
	role := model.RoleClient
	if sess, err := cfg.Sessions.Current(); err == nil && sess != nil {
		role = sess.Role
	}
	return GateView(ctx, routeFor(role))
}

// WrapExpired turns the binding's credential-loss sentinel into the one
// message users see for it, wherever the call originated. The session is
// already cleared by the time this runs, so the next navigation lands on
// login.
func WrapExpired(err error) error {
	if errors.Is(err, api.ErrSessionExpired) {
		return errors.New("session expired; run 'deskctl auth login' to continue")
	}
	return err
}

// Render draws the dashboard view living at the given route.
func Render(ctx context.Context, sess *model.Session, route string) error {
	switch route {
	case policy.RouteClientHome:
		return renderCliente(ctx, sess)
	case policy.RouteSupportHome:
		return renderSoporte(ctx, sess)
	case policy.RouteAdminHome:
		return renderAdmin(ctx, sess)
	}
	return fmt.Errorf("no dashboard registered for route %s", route)
}

func makeViewCmd(use, short, route string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, proceed, err := GateView(cmd.Context(), route)
			if err != nil || !proceed {
				return err
			}
			return Render(cmd.Context(), sess, route)
		},
	}
}

var (
	clienteCmd = makeViewCmd("cliente", "Client dashboard", policy.RouteClientHome)
	soporteCmd = makeViewCmd("soporte", "Support dashboard", policy.RouteSupportHome)
	adminCmd   = makeViewCmd("admin", "Admin dashboard", policy.RouteAdminHome)
)
