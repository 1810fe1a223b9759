package request

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

var (
	listAll      bool
	listStatus   string
	listCategory string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List support requests",
	Long: `Lists the caller's own requests. Support and admin sessions list the
whole queue; --all makes that explicit for scripts.`,
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		sess, proceed, err := gateByRole(cobraCmd.Context(), listRoute)
		if err != nil || !proceed {
			return err
		}

		var statusFilter model.Status
		if listStatus != "" {
			statusFilter, err = model.ParseStatus(listStatus)
			if err != nil {
				return err
			}
		}
		var categoryFilter model.Category
		if listCategory != "" {
			categoryFilter, err = model.ParseCategory(listCategory)
			if err != nil {
				return err
			}
		}

		wholeQueue := sess.Role != model.RoleClient
		if listAll && !wholeQueue {
			// The server would reject it anyway; fail before the call.
			return fmt.Errorf("--all requires a support or admin session")
		}

		cfg := config.MustFromContext(cobraCmd.Context())
		ctx, cancel := context.WithTimeout(cobraCmd.Context(), 10*time.Second)
		defer cancel()

		var requests []model.Request
		if wholeQueue {
			requests, err = cfg.Provider.API().AllRequests(ctx)
		} else {
			requests, err = cfg.Provider.API().Requests(ctx)
		}
		if err != nil {
			return dashboard.WrapExpired(err)
		}

		shown := 0
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		if wholeQueue {
			fmt.Fprintln(w, "ID\tCLIENTE\tTÍTULO\tCATEGORÍA\tESTADO\tPRIORIDAD\tCREACIÓN\tACTUALIZACIÓN")
		} else {
			fmt.Fprintln(w, "ID\tTÍTULO\tCATEGORÍA\tESTADO\tPRIORIDAD\tCREACIÓN\tACTUALIZACIÓN")
		}
		for _, r := range requests {
			if statusFilter != "" && r.Status != statusFilter {
				continue
			}
			if categoryFilter != "" && r.Category != categoryFilter {
				continue
			}
			shown++
			if wholeQueue {
				owner := "Desconocido"
				if r.User != nil {
					owner = r.User.Name
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					r.ID, owner, r.Title, r.Category.Label(), r.Status.Label(), r.Priority.Label(),
					formatDate(r.CreatedAt), formatDate(r.UpdatedAt))
			} else {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.Title, r.Category.Label(), r.Status.Label(), r.Priority.Label(),
					formatDate(r.CreatedAt), formatDate(r.UpdatedAt))
			}
		}
		w.Flush()

		if shown == 0 {
			pterm.Info.Println("No se encontraron solicitudes.")
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listAll, "all", false, "List every request (support/admin)")
	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status (PENDING, IN_PROGRESS, RESOLVED, CLOSED, CANCELLED)")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category (TECHNICAL_SUPPORT, GENERAL_INQUIRY, ACCESS_ISSUE, BILLING, OTHER)")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006")
}
