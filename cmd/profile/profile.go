// Package profile holds the self-service account views: showing the
// current identity and changing one's own password.
package profile

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/helpdesk-tools/deskctl/cmd/dashboard"
	"github.com/helpdesk-tools/deskctl/internal/model"
	"github.com/helpdesk-tools/deskctl/internal/policy"
)

// ProfileCmd is the parent command for the caller's own account.
var ProfileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"perfil"},
	Short:   "Your own account",
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		sess, proceed, err := gateProfile(cobraCmd.Context())
		if err != nil || !proceed {
			return err
		}

		pterm.DefaultSection.Println("Mi Perfil")
		pterm.Printf("Nombre: %s\n", sess.Name)
		pterm.Printf("Email:  %s\n", sess.Email)
		pterm.Printf("Rol:    %s\n", sess.Role.Label())
		pterm.Println()
		pterm.Info.Println("Cambiar contraseña: 'deskctl profile password'.")
		return nil
	},
}

func init() {
	ProfileCmd.AddCommand(passwordCmd)
}

// profileRoute is the profile view for each role. Admins have no profile
// entry in their navigation, so they gate against their dashboard root.
func profileRoute(role model.Role) string {
	switch role {
	case model.RoleSupport:
		return policy.RouteSupportHome + "/perfil"
	case model.RoleAdmin:
		return policy.RouteAdminHome
	default:
		return policy.RouteClientHome + "/perfil"
	}
}

func gateProfile(ctx context.Context) (*model.Session, bool, error) {
	return dashboard.GateByRole(ctx, profileRoute)
}
