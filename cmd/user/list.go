package user

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/helpdesk-tools/deskctl/cmd/dashboard"
	"github.com/helpdesk-tools/deskctl/internal/config"
	"github.com/helpdesk-tools/deskctl/internal/model"
)

var listRole string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		_, proceed, err := gateUsers(cobraCmd.Context())
		if err != nil || !proceed {
			return err
		}

		var roleFilter model.Role
		if listRole != "" {
			roleFilter, err = model.ParseRole(listRole)
			if err != nil {
				return err
			}
		}

		cfg := config.MustFromContext(cobraCmd.Context())
		ctx, cancel := context.WithTimeout(cobraCmd.Context(), 10*time.Second)
		defer cancel()

		users, err := cfg.Provider.API().Users(ctx)
		if err != nil {
			return dashboard.WrapExpired(err)
		}

		shown := 0
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNOMBRE\tEMAIL\tROL\tACTIVO\tCREACIÓN")
		for _, u := range users {
			if roleFilter != "" && u.Role != roleFilter {
				continue
			}
			shown++
			active := "Sí"
			if !u.Active {
				active = "No"
			}
			created := "-"
			if !u.CreatedAt.IsZero() {
				created = u.CreatedAt.Format("02 Jan 2006")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				u.ID, u.Name, u.Email, u.Role.Label(), active, created)
		}
		w.Flush()

		if shown == 0 {
			pterm.Info.Println("No se encontraron usuarios.")
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listRole, "role", "", "Filter by role (CLIENT, SUPPORT, ADMIN)")
}
