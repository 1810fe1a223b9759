package profile

import (
	"context"
	"errors"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/helpdesk-tools/deskctl/cmd/dashboard"
	"github.com/helpdesk-tools/deskctl/internal/config"
)

var passwordFlag string

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change your password",
	Long: `Changes the password of the logged-in account. Prompts twice with a
masked input; the new password must be at least 6 characters.`,
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		_, proceed, err := gateProfile(cobraCmd.Context())
		if err != nil || !proceed {
			return err
		}

		cfg := config.MustFromContext(cobraCmd.Context())
		password, err := gatherPassword(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cobraCmd.Context(), 10*time.Second)
		defer cancel()

		if err := cfg.Provider.API().UpdatePassword(ctx, password); err != nil {
			return dashboard.WrapExpired(err)
		}
		pterm.Success.Println("Contraseña actualizada correctamente.")
		return nil
	},
}

func init() {
	passwordCmd.Flags().StringVar(&passwordFlag, "password", "", "New password (min 6 characters)")
}

func gatherPassword(cfg *config.GlobalConfig) (string, error) {
	password := passwordFlag
	if password == "" {
		if cfg.NonInteractive {
			return "", errors.New("--password is required in non-interactive mode")
		}
		var err error
		password, err = pterm.DefaultInteractiveTextInput.WithMask("*").Show("Nueva contraseña")
		if err != nil {
			return "", err
		}
		confirm, err := pterm.DefaultInteractiveTextInput.WithMask("*").Show("Confirmar contraseña")
		if err != nil {
			return "", err
		}
		if password != confirm {
			return "", errors.New("las contraseñas no coinciden")
		}
	}
	if len(password) < 6 {
		return "", errors.New("la contraseña debe tener al menos 6 caracteres")
	}
	return password, nil
}
