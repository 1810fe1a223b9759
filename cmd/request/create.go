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
	"github.com/helpdesk-tools/deskctl/internal/policy"
)

var (
	createTitle       string
	createDescription string
	createCategory    string
	createPriority    string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a new support request",
	Long: `Opens a new support request. Only client sessions create tickets; the
new ticket starts in PENDING until support picks it up.

Fields can be passed as flags or entered interactively.`,
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		_, proceed, err := dashboard.GateView(cobraCmd.Context(), policy.RouteClientHome+"/nueva-solicitud")
		if err != nil || !proceed {
			return err
		}

		cfg := config.MustFromContext(cobraCmd.Context())
		in, err := gatherRequestForm(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cobraCmd.Context(), 10*time.Second)
		defer cancel()

		msg, err := cfg.Provider.API().CreateRequest(ctx, in)
		if err != nil {
			return dashboard.WrapExpired(err)
		}

		pterm.Success.Println("Solicitud creada correctamente (estado inicial: Pendiente).")
		if msg != "" {
			pterm.Info.Println(msg)
		}
		pterm.Info.Println("Use 'deskctl request list' to follow it.")
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createTitle, "title", "", "Short summary of the problem")
	createCmd.Flags().StringVar(&createDescription, "description", "", "Full description")
	createCmd.Flags().StringVar(&createCategory, "category", "", "One of TECHNICAL_SUPPORT, GENERAL_INQUIRY, ACCESS_ISSUE, BILLING, OTHER")
	createCmd.Flags().StringVar(&createPriority, "priority", "", "One of LOW, MEDIUM, HIGH, CRITICAL")
}

// gatherRequestForm validates the ticket form before anything is sent.
func gatherRequestForm(cfg *config.GlobalConfig) (api.CreateRequestInput, error) {
	var in api.CreateRequestInput

	title := createTitle
	if title == "" && !cfg.NonInteractive {
		var err error
		title, err = pterm.DefaultInteractiveTextInput.Show("Título")
		if err != nil {
			return in, err
		}
	}
	if title == "" {
		return in, errors.New("el título es requerido")
	}
	if len(title) > 100 {
		return in, errors.New("el título no puede superar 100 caracteres")
	}

	description := createDescription
	if description == "" && !cfg.NonInteractive {
		var err error
		description, err = pterm.DefaultInteractiveTextInput.Show("Descripción")
		if err != nil {
			return in, err
		}
	}
	if description == "" {
		return in, errors.New("la descripción es requerida")
	}

	category, err := pickCategory(cfg)
	if err != nil {
		return in, err
	}
	priority, err := pickPriority(cfg)
	if err != nil {
		return in, err
	}

	in.Title = title
	in.Description = description
	in.Category = category
	in.Priority = priority
	return in, nil
}

func pickCategory(cfg *config.GlobalConfig) (model.Category, error) {
	if createCategory != "" {
		return model.ParseCategory(createCategory)
	}
	if cfg.NonInteractive {
		return "", errors.New("--category is required in non-interactive mode")
	}
	options := make([]string, len(model.Categories))
	for i, c := range model.Categories {
		options[i] = fmt.Sprintf("%s (%s)", c.Label(), c)
	}
	picked, err := pterm.DefaultInteractiveSelect.WithOptions(options).Show("Categoría")
	if err != nil {
		return "", err
	}
	for i, opt := range options {
		if opt == picked {
			return model.Categories[i], nil
		}
	}
	return "", errors.New("la categoría es requerida")
}

func pickPriority(cfg *config.GlobalConfig) (model.Priority, error) {
	if createPriority != "" {
		return model.ParsePriority(createPriority)
	}
	if cfg.NonInteractive {
		return "", errors.New("--priority is required in non-interactive mode")
	}
	options := make([]string, len(model.Priorities))
	for i, p := range model.Priorities {
		options[i] = fmt.Sprintf("%s (%s)", p.Label(), p)
	}
	picked, err := pterm.DefaultInteractiveSelect.WithOptions(options).Show("Prioridad")
	if err != nil {
		return "", err
	}
	for i, opt := range options {
		if opt == picked {
			return model.Priorities[i], nil
		}
	}
	return "", errors.New("la prioridad es requerida")
}
