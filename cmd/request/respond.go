package request

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/helpdesk-tools/deskctl/cmd/dashboard"
	"github.com/helpdesk-tools/deskctl/internal/config"
	"github.com/helpdesk-tools/deskctl/internal/model"
	"github.com/helpdesk-tools/deskctl/internal/suggest"
	"github.com/helpdesk-tools/deskctl/internal/ticket"
)

var (
	respondMessage string
	respondSuggest bool
)

var respondCmd = &cobra.Command{
	Use:   "respond <id>",
	Short: "Append a response to a request",
	Long: `Appends a response to a request's thread. Responses are append-only and
tickets in a terminal state (CLOSED, CANCELLED) accept none.

With --suggest, a draft is generated from the ticket and shown for
confirmation before anything is sent.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		id := args[0]
		_, proceed, err := gateByRole(cobraCmd.Context(), func(role model.Role) string {
			return detailRoute(role, id)
		})
		if err != nil || !proceed {
			return err
		}

		req, err := fetchRequest(cobraCmd.Context(), id)
		if err != nil {
			return err
		}
		if !ticket.CanRespond(req.Status) {
			return fmt.Errorf("%w: la solicitud está %s y no admite respuestas",
				ticket.ErrTicketTerminal, req.Status.Label())
		}

		cfg := config.MustFromContext(cobraCmd.Context())
		content, err := gatherResponse(cobraCmd.Context(), cfg, req)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cobraCmd.Context(), 10*time.Second)
		defer cancel()

		if _, err := cfg.Provider.API().CreateResponse(ctx, req.ID, content); err != nil {
			return dashboard.WrapExpired(err)
		}
		pterm.Success.Println("Respuesta enviada.")
		return nil
	},
}

func init() {
	respondCmd.Flags().StringVar(&respondMessage, "message", "", "Response text")
	respondCmd.Flags().BoolVar(&respondSuggest, "suggest", false, "Draft the response with the suggestion model")
}

func gatherResponse(ctx context.Context, cfg *config.GlobalConfig, req *model.Request) (string, error) {
	if respondMessage != "" {
		return respondMessage, nil
	}

	if respondSuggest {
		return suggestedResponse(ctx, cfg, req)
	}

	if cfg.NonInteractive {
		return "", errors.New("--message is required in non-interactive mode")
	}
	content, err := pterm.DefaultInteractiveTextInput.Show("Respuesta")
	if err != nil {
		return "", err
	}
	if content == "" {
		return "", errors.New("la respuesta no puede estar vacía")
	}
	return content, nil
}

// suggestedResponse drafts a reply from the ticket and, when running
// interactively, asks before sending it.
func suggestedResponse(ctx context.Context, cfg *config.GlobalConfig, req *model.Request) (string, error) {
	previous := make([]string, 0, len(req.Responses))
	for _, r := range req.Responses {
		previous = append(previous, r.Content)
	}

	spinner, _ := pterm.DefaultSpinner.Start("Generando sugerencia...")
	draft := (&suggest.Client{APIKey: cfg.SuggestAPIKey}).Generate(ctx, suggest.Input{
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category.Label(),
		PreviousResponses: previous,
	})
	spinner.Stop()

	if draft.FromModel {
		pterm.Info.Printf("Sugerencia generada por %s:\n", draft.Model)
	} else {
		pterm.Info.Println("Modelo no disponible; usando respuesta predeterminada:")
	}
	pterm.Println()
	pterm.Println(draft.Text)
	pterm.Println()

	if cfg.NonInteractive {
		return draft.Text, nil
	}
	ok, err := pterm.DefaultInteractiveConfirm.Show("¿Enviar esta respuesta?")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.New("respuesta descartada")
	}
	return draft.Text, nil
}
