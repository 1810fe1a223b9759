package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/helpdesk-tools/deskctl/cmd/dashboard"
	"github.com/helpdesk-tools/deskctl/internal/api"
	"github.com/helpdesk-tools/deskctl/internal/config"
	"github.com/helpdesk-tools/deskctl/internal/guard"
	"github.com/helpdesk-tools/deskctl/internal/policy"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the support desk",
	Long: `Authenticates with the ticket server using email and password.

Credentials can be passed with --email and --password, or entered
interactively. On success the session is stored under ~/.deskctl and
every subsequent command runs as that user until logout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		// A logged-in user never re-sees the login view.
		sess, _ := cfg.Sessions.Current()
		if dec := guard.Evaluate(sess, policy.RouteLogin); dec.Action == guard.RedirectDefault {
			pterm.Info.Printf("Already logged in as %s (%s).\n", sess.Name, sess.Role.Label())
			return dashboard.Render(cmd.Context(), sess, dec.Target)
		}

		email, password, err := gatherCredentials(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		newSess, err := cfg.Provider.API().Login(ctx, email, password)
		if err != nil {
			return loginError(err)
		}
		if err := cfg.Sessions.Set(newSess); err != nil {
			return fmt.Errorf("failed to store session: %w", err)
		}

		pol, _ := policy.For(newSess.Role)
		pterm.Success.Printf("Login successful. Welcome, %s (%s).\n", newSess.Name, newSess.Role.Label())
		pterm.Info.Printf("Your dashboard: %s — run 'deskctl dashboard' to open it.\n", pol.DefaultRoute)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
}

// gatherCredentials applies the form-level validation rules before any
// network call is made.
func gatherCredentials(cfg *config.GlobalConfig) (string, string, error) {
	email := loginEmail
	password := loginPassword

	if email == "" {
		if cfg.NonInteractive {
			return "", "", errors.New("--email is required in non-interactive mode")
		}
		var err error
		email, err = pterm.DefaultInteractiveTextInput.Show("Email")
		if err != nil {
			return "", "", err
		}
	}
	if email == "" {
		return "", "", errors.New("el email es requerido")
	}
	if len(email) > 50 {
		return "", "", errors.New("el email no puede superar 50 caracteres")
	}

	if password == "" {
		if cfg.NonInteractive {
			return "", "", errors.New("--password is required in non-interactive mode")
		}
		var err error
		password, err = pterm.DefaultInteractiveTextInput.WithMask("*").Show("Contraseña")
		if err != nil {
			return "", "", err
		}
	}
	if password == "" {
		return "", "", errors.New("la contraseña es requerida")
	}

	return email, password, nil
}

// loginError maps server answers to the inline messages the login form
// shows. A failed login never leaves a session behind.
func loginError(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			return errors.New("Credenciales inválidas")
		case http.StatusBadRequest:
			return errors.New("Email y contraseña son requeridos")
		case http.StatusInternalServerError:
			return errors.New("Error en el servidor. Intenta más tarde")
		}
		if apiErr.Message != "" {
			return errors.New(apiErr.Message)
		}
	}
	return fmt.Errorf("login failed: %w", err)
}
