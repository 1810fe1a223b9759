package cmd

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/helpdesk-tools/deskctl/internal/config"
)

var (
	setServerURL  string
	setSuggestKey string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the deskctl config file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		f, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		if f == nil {
			pterm.Info.Printf("No config file at %s.\n", path)
			return nil
		}

		pterm.Info.Printf("Config file: %s\n", path)
		if f.ServerURL != "" {
			pterm.Printf("server_url: %s\n", f.ServerURL)
		}
		if f.SuggestAPIKey != "" {
			// Keys never echo in full.
			pterm.Printf("suggestions_api_key: %s...\n", f.SuggestAPIKey[:min(4, len(f.SuggestAPIKey))])
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store settings in the config file",
	Long: `Stores settings in ~/.deskctl/config.yaml. Flags and environment
variables still take precedence at run time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("server-url") && !cmd.Flags().Changed("suggestions-api-key") {
			return errors.New("nothing to set: pass --server-url or --suggestions-api-key")
		}

		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		f, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		if f == nil {
			f = &config.File{}
		}

		if cmd.Flags().Changed("server-url") {
			f.ServerURL = setServerURL
		}
		if cmd.Flags().Changed("suggestions-api-key") {
			f.SuggestAPIKey = setSuggestKey
		}

		if err := config.SaveFile(path, f); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		pterm.Success.Printf("Config saved to %s.\n", path)
		return nil
	},
}

func init() {
	configSetCmd.Flags().StringVar(&setServerURL, "server-url", "", "Ticket API server URL")
	configSetCmd.Flags().StringVar(&setSuggestKey, "suggestions-api-key", "", "API key for response suggestions")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
