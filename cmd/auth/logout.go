package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/helpdesk-tools/deskctl/internal/config"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out from the support desk",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		sess, err := cfg.Sessions.Current()
		if err != nil || sess == nil {
			pterm.Info.Println("Not logged in.")
			return nil
		}

		// Best effort: the server invalidates the credential, but the
		// local session is cleared no matter what the call returns.
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		if err := cfg.Provider.API().Logout(ctx); err != nil {
			pterm.Warning.Printf("Server logout failed (%v); clearing local session anyway.\n", err)
		}

		if err := cfg.Sessions.Clear(); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		pterm.Success.Println("Logged out successfully")
		return nil
	},
}
