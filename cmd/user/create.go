package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/helpdesk-tools/deskctl/cmd/dashboard"
	"github.com/helpdesk-tools/deskctl/internal/api"
	"github.com/helpdesk-tools/deskctl/internal/config"
	"github.com/helpdesk-tools/deskctl/internal/model"
)

var (
	createName     string
	createEmail    string
	createPassword string
	createRole     string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	Long: `Creates an account with the given role. Fields can be passed as flags
or entered interactively; the password prompt is masked.`,
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		_, proceed, err := gateUsers(cobraCmd.Context())
		if err != nil || !proceed {
			return err
		}

		cfg := config.MustFromContext(cobraCmd.Context())
		in, err := gatherUserForm(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cobraCmd.Context(), 10*time.Second)
		defer cancel()

		created, err := cfg.Provider.API().CreateUser(ctx, in)
		if err != nil {
			return dashboard.WrapExpired(err)
		}

		pterm.Success.Printf("Usuario creado: %s <%s> (%s)\n", created.Name, created.Email, created.Role.Label())
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createName, "name", "", "Full name")
	createCmd.Flags().StringVar(&createEmail, "email", "", "Email address")
	createCmd.Flags().StringVar(&createPassword, "password", "", "Initial password (min 6 characters)")
	createCmd.Flags().StringVar(&createRole, "role", "", "One of CLIENT, SUPPORT, ADMIN")
}

// gatherUserForm validates the account form before anything is sent.
func gatherUserForm(cfg *config.GlobalConfig) (api.CreateUserInput, error) {
	var in api.CreateUserInput

	name := createName
	if name == "" && !cfg.NonInteractive {
		var err error
		name, err = pterm.DefaultInteractiveTextInput.Show("Nombre")
		if err != nil {
			return in, err
		}
	}
	if name == "" {
		return in, errors.New("el nombre es requerido")
	}

	email := createEmail
	if email == "" && !cfg.NonInteractive {
		var err error
		email, err = pterm.DefaultInteractiveTextInput.Show("Email")
		if err != nil {
			return in, err
		}
	}
	if email == "" {
		return in, errors.New("el email es requerido")
	}
	if !strings.Contains(email, "@") {
		return in, errors.New("el email no es válido")
	}

	password := createPassword
	if password == "" && !cfg.NonInteractive {
		var err error
		password, err = pterm.DefaultInteractiveTextInput.WithMask("*").Show("Contraseña")
		if err != nil {
			return in, err
		}
	}
	if len(password) < 6 {
		return in, errors.New("la contraseña debe tener al menos 6 caracteres")
	}

	role, err := pickRole(cfg)
	if err != nil {
		return in, err
	}

	in.Name = name
	in.Email = email
	in.Password = password
	in.Role = role
	return in, nil
}

func pickRole(cfg *config.GlobalConfig) (model.Role, error) {
	if createRole != "" {
		return model.ParseRole(createRole)
	}
	if cfg.NonInteractive {
		return "", errors.New("--role is required in non-interactive mode")
	}
	options := make([]string, len(model.Roles))
	for i, r := range model.Roles {
		options[i] = fmt.Sprintf("%s (%s)", r.Label(), r)
	}
	picked, err := pterm.DefaultInteractiveSelect.WithOptions(options).Show("Rol")
	if err != nil {
		return "", err
	}
	for i, opt := range options {
		if opt == picked {
			return model.Roles[i], nil
		}
	}
	return "", errors.New("el rol es requerido")
}
