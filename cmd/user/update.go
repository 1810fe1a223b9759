package user

import (
	"context"
	"errors"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/helpdesk-tools/deskctl/cmd/dashboard"
	"github.com/helpdesk-tools/deskctl/internal/api"
	"github.com/helpdesk-tools/deskctl/internal/config"
	"github.com/helpdesk-tools/deskctl/internal/model"
)

var (
	updateName     string
	updatePassword string
	updateRole     string
	updateActive   bool
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit an account",
	Long: `Edits an account. Only the fields passed as flags are changed; the rest
stay as they are. Deactivating an account (--active=false) keeps its
tickets and history but blocks new logins server-side.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		_, proceed, err := gateUsers(cobraCmd.Context())
		if err != nil || !proceed {
			return err
		}

		in, err := buildUpdate(cobraCmd)
		if err != nil {
			return err
		}

		cfg := config.MustFromContext(cobraCmd.Context())
		ctx, cancel := context.WithTimeout(cobraCmd.Context(), 10*time.Second)
		defer cancel()

		updated, err := cfg.Provider.API().UpdateUser(ctx, args[0], in)
		if err != nil {
			return dashboard.WrapExpired(err)
		}

		state := "activo"
		if !updated.Active {
			state = "inactivo"
		}
		pterm.Success.Printf("Usuario actualizado: %s <%s> (%s, %s)\n",
			updated.Name, updated.Email, updated.Role.Label(), state)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateName, "name", "", "New full name")
	updateCmd.Flags().StringVar(&updatePassword, "password", "", "New password (min 6 characters)")
	updateCmd.Flags().StringVar(&updateRole, "role", "", "New role (CLIENT, SUPPORT, ADMIN)")
	updateCmd.Flags().BoolVar(&updateActive, "active", true, "Whether the account may log in")
}

// buildUpdate turns the flags that were actually set into a partial
// update body; an empty body is rejected before the call.
func buildUpdate(cobraCmd *cobra.Command) (api.UpdateUserInput, error) {
	var in api.UpdateUserInput

	if cobraCmd.Flags().Changed("name") {
		if updateName == "" {
			return in, errors.New("el nombre no puede estar vacío")
		}
		in.Name = &updateName
	}
	if cobraCmd.Flags().Changed("password") {
		if len(updatePassword) < 6 {
			return in, errors.New("la contraseña debe tener al menos 6 caracteres")
		}
		in.Password = &updatePassword
	}
	if cobraCmd.Flags().Changed("role") {
		role, err := model.ParseRole(updateRole)
		if err != nil {
			return in, err
		}
		in.Role = &role
	}
	if cobraCmd.Flags().Changed("active") {
		in.Active = &updateActive
	}

	if in.Name == nil && in.Password == nil && in.Role == nil && in.Active == nil {
		return in, errors.New("nothing to update: pass at least one of --name, --password, --role, --active")
	}
	return in, nil
}
