// Package request holds the ticket views: listing, detail, creation,
// responses, and status transitions.
package request

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/helpdesk-tools/deskctl/cmd/dashboard"
	"github.com/helpdesk-tools/deskctl/internal/model"
	"github.com/helpdesk-tools/deskctl/internal/policy"
)

// RequestCmd is the parent command for ticket operations
var RequestCmd = &cobra.Command{
	Use:     "request",
	Aliases: []string{"solicitud"},
	Short:   "Work with support requests",
	Long:    `Commands for creating, listing, and working support requests.`,
}

func init() {
	RequestCmd.AddCommand(listCmd)
	RequestCmd.AddCommand(showCmd)
	RequestCmd.AddCommand(createCmd)
	RequestCmd.AddCommand(statusCmd)
	RequestCmd.AddCommand(cancelCmd)
	RequestCmd.AddCommand(respondCmd)
}

// listRoute is the view a ticket listing maps to for each role; clients
// see their own tickets, support and admin see the whole queue.
func listRoute(role model.Role) string {
	switch role {
	case model.RoleSupport:
		return policy.RouteSupportHome + "/todas"
	case model.RoleAdmin:
		return policy.RouteAdminHome + "/solicitudes"
	default:
		return policy.RouteClientHome + "/mis-solicitudes"
	}
}

// detailRoute is the view a single ticket maps to for each role.
func detailRoute(role model.Role, id string) string {
	switch role {
	case model.RoleSupport:
		return policy.RouteSupportHome + "/solicitudes/" + id
	case model.RoleAdmin:
		return policy.RouteAdminHome + "/solicitudes/" + id
	default:
		return policy.RouteClientHome + "/mis-solicitudes/" + id
	}
}

// gateByRole guards a view whose route depends on the caller's own role.
func gateByRole(ctx context.Context, routeFor func(model.Role) string) (*model.Session, bool, error) {
	return dashboard.GateByRole(ctx, routeFor)
}
