package request

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/helpdesk-tools/deskctl/cmd/dashboard"
	"github.com/helpdesk-tools/deskctl/internal/api"
	"github.com/helpdesk-tools/deskctl/internal/config"
	"github.com/helpdesk-tools/deskctl/internal/model"
	"github.com/helpdesk-tools/deskctl/internal/ticket"
)

var statusCmd = &cobra.Command{
	Use:   "status <id> [<new-status>]",
	Short: "Move a request through its lifecycle",
	Long: `Changes a request's status. The transition is validated locally against
the lifecycle rules before the server is asked; the server stays
authoritative and a rejection there means the ticket changed under you —
re-fetch and retry.

With the status omitted, an interactive picker offers the legal moves.`,
	Args: cobra.RangeArgs(1, 2),
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
		owns := req.OwnedBy(sess.ID)

		var target model.Status
		if len(args) == 2 {
			target, err = model.ParseStatus(args[1])
			if err != nil {
				return err
			}
		} else {
			target, err = pickNextStatus(cobraCmd.Context(), sess, req, owns)
			if err != nil {
				return err
			}
		}

		return changeStatus(cobraCmd.Context(), sess, req, target)
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a request",
	Long:  `Cancels a request. Clients may cancel their own pending tickets; support and admin may cancel pending or in-progress ones.`,
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
		return changeStatus(cobraCmd.Context(), sess, req, model.StatusCancelled)
	},
}

func pickNextStatus(ctx context.Context, sess *model.Session, req *model.Request, owns bool) (model.Status, error) {
	cfg := config.MustFromContext(ctx)
	next := ticket.NextStatuses(sess.Role, owns, req.Status)
	if len(next) == 0 {
		return "", fmt.Errorf("no hay transiciones disponibles desde %s para su rol", req.Status.Label())
	}
	if cfg.NonInteractive {
		return "", errors.New("a target status is required in non-interactive mode")
	}

	options := make([]string, len(next))
	for i, s := range next {
		options[i] = fmt.Sprintf("%s (%s)", s.Label(), s)
	}
	picked, err := pterm.DefaultInteractiveSelect.WithOptions(options).Show("Nuevo estado")
	if err != nil {
		return "", err
	}
	for i, opt := range options {
		if opt == picked {
			return next[i], nil
		}
	}
	return "", errors.New("no status selected")
}

// changeStatus validates the move locally, asks the server, and treats a
// server-side rejection as a recoverable conflict: the fresh state is
// shown instead of the optimistic one.
func changeStatus(ctx context.Context, sess *model.Session, req *model.Request, target model.Status) error {
	if err := ticket.Allowed(sess.Role, req.OwnedBy(sess.ID), req.Status, target); err != nil {
		return err
	}

	cfg := config.MustFromContext(ctx)
	callCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	updated, err := cfg.Provider.API().UpdateStatus(callCtx, req.ID, target)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			pterm.Warning.Printf("El servidor rechazó el cambio de estado: %s\n", apiErr.Message)
			fresh, fetchErr := fetchRequest(ctx, req.ID)
			if fetchErr != nil {
				return fetchErr
			}
			pterm.Info.Printf("Estado actual de la solicitud: %s. Intente de nuevo.\n", fresh.Status.Label())
			return nil
		}
		return dashboard.WrapExpired(err)
	}

	pterm.Success.Printf("Estado actualizado: %s -> %s\n", req.Status.Label(), updated.Status.Label())
	return nil
}
