package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/helpdesk-tools/deskctl/cmd/auth"
	"github.com/helpdesk-tools/deskctl/cmd/dashboard"
	"github.com/helpdesk-tools/deskctl/cmd/profile"
	"github.com/helpdesk-tools/deskctl/cmd/request"
	"github.com/helpdesk-tools/deskctl/cmd/user"
	"github.com/helpdesk-tools/deskctl/internal/client"
	"github.com/helpdesk-tools/deskctl/internal/config"
	"github.com/helpdesk-tools/deskctl/internal/session"
)

var (
	serverURL      string
	nonInteractive bool
)

var rootCmd = &cobra.Command{
	Use:   "deskctl",
	Short: "Support desk CLI - ticket management client",
	Long: `deskctl is the command-line interface for the support desk: log in, open
and follow support tickets, work the queue as a support agent, and manage
users and reports as an administrator. The server decides what each role
may actually do; deskctl routes you to the views your role can use.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; it carries the suggestion API key in dev setups.
		_ = godotenv.Load()

		if os.Getenv("DESK_NON_INTERACTIVE") == "1" {
			nonInteractive = true
		}

		var fileCfg *config.File
		if path, err := config.DefaultPath(); err == nil {
			fileCfg, err = config.LoadFile(path)
			if err != nil {
				pterm.Warning.Printf("Ignoring config file: %v\n", err)
			}
		}

		// Precedence: flag > environment > config file > built-in default.
		if !cmd.Flags().Changed("server") {
			if env := os.Getenv("DESK_SERVER_URL"); env != "" {
				serverURL = env
			} else if fileCfg != nil && fileCfg.ServerURL != "" {
				serverURL = fileCfg.ServerURL
			}
		}

		suggestKey := os.Getenv("HUGGINGFACE_API_KEY")
		if suggestKey == "" && fileCfg != nil {
			suggestKey = fileCfg.SuggestAPIKey
		}

		store, err := session.NewFileStore()
		if err != nil {
			return fmt.Errorf("failed to open session store: %w", err)
		}

		cfg := &config.GlobalConfig{
			ServerURL:      serverURL,
			NonInteractive: nonInteractive,
			SuggestAPIKey:  suggestKey,
			Sessions:       store,
			Provider:       client.NewProvider(serverURL, store),
		}
		cmd.SetContext(config.Inject(cmd.Context(), cfg))
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:3000", "Ticket API server URL (also DESK_SERVER_URL)")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "Disable interactive prompts (also set via DESK_NON_INTERACTIVE=1)")
	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(dashboard.DashboardCmd)
	rootCmd.AddCommand(request.RequestCmd)
	rootCmd.AddCommand(user.UserCmd)
	rootCmd.AddCommand(profile.ProfileCmd)
}
