// Package user holds the admin account views: listing accounts, creating
// them, and editing role, password, and active flag.
package user

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/helpdesk-tools/deskctl/cmd/dashboard"
	"github.com/helpdesk-tools/deskctl/internal/model"
	"github.com/helpdesk-tools/deskctl/internal/policy"
)

// UserCmd is the parent command for account management. Every subcommand
// maps to the admin user view, so non-admin sessions land back on their
// own dashboard.
var UserCmd = &cobra.Command{
	Use:     "user",
	Aliases: []string{"usuario"},
	Short:   "Manage accounts (admin)",
	Long:    `Commands for listing, creating, and editing accounts. Admin only.`,
}

func init() {
	UserCmd.AddCommand(listCmd)
	UserCmd.AddCommand(createCmd)
	UserCmd.AddCommand(updateCmd)
}

func gateUsers(ctx context.Context) (*model.Session, bool, error) {
	return dashboard.GateView(ctx, policy.RouteAdminHome+"/usuarios")
}
