package request

import (
	"context"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/helpdesk-tools/deskctl/cmd/dashboard"
	"github.com/helpdesk-tools/deskctl/internal/config"
	"github.com/helpdesk-tools/deskctl/internal/model"
	"github.com/helpdesk-tools/deskctl/internal/ticket"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one request with its response thread",
	Args:  cobra.ExactArgs(1),
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		id := args[0]
		sess, proceed, err := gateByRole(cobraCmd.Context(), func(role model.Role) string {
			return detailRoute(role, id)
		})
		if err != nil || !proceed {
			return err
		}

		req, err := fetchRequest(cobraCmd.Context(), id)
		if err != nil {
			return err
		}

		printRequest(sess, req)
		return nil
	},
}

func fetchRequest(ctx context.Context, id string) (*model.Request, error) {
	cfg := config.MustFromContext(ctx)
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := cfg.Provider.API().Request(ctx, id)
	if err != nil {
		return nil, dashboard.WrapExpired(err)
	}
	return req, nil
}

func printRequest(sess *model.Session, req *model.Request) {
	pterm.DefaultSection.Printf("Solicitud %s", req.ID)
	pterm.Printf("Título:      %s\n", req.Title)
	pterm.Printf("Estado:      %s\n", req.Status.Label())
	pterm.Printf("Prioridad:   %s\n", req.Priority.Label())
	pterm.Printf("Categoría:   %s\n", req.Category.Label())
	if req.User != nil {
		pterm.Printf("Cliente:     %s <%s>\n", req.User.Name, req.User.Email)
	}
	pterm.Printf("Creación:    %s\n", formatDate(req.CreatedAt))
	pterm.Printf("Actualización: %s\n", formatDate(req.UpdatedAt))
	pterm.Println()
	pterm.Println(req.Description)

	pterm.DefaultSection.Printf("Respuestas (%d)", len(req.Responses))
	if len(req.Responses) == 0 {
		pterm.Info.Println("Sin respuestas todavía.")
	}
	for _, resp := range req.Responses {
		pterm.Printf("[%s]\n%s\n\n", resp.CreatedAt.Format("02 Jan 2006 15:04"), resp.Content)
	}

	if ticket.Terminal(req.Status) {
		pterm.Info.Printf("La solicitud está en estado terminal (%s); no admite cambios.\n", req.Status.Label())
		return
	}

	next := ticket.NextStatuses(sess.Role, req.OwnedBy(sess.ID), req.Status)
	if len(next) > 0 {
		labels := make([]string, len(next))
		for i, s := range next {
			labels[i] = string(s)
		}
		pterm.Info.Printf("Transiciones disponibles: %s — 'deskctl request status %s <estado>'.\n",
			strings.Join(labels, ", "), req.ID)
	}
	if ticket.CanRespond(req.Status) {
		pterm.Info.Printf("Responder: 'deskctl request respond %s'.\n", req.ID)
	}
}
