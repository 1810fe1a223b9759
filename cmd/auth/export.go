package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/helpdesk-tools/deskctl/internal/config"
)

var shellFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the session credential as environment variables",
	Long: `Export the stored credential as environment variables for scripting
direct calls against the ticket API (curl, httpie, CI jobs).

This command outputs shell commands setting DESK_TOKEN and DESK_SERVER_URL.

Supported shells:
  - posix (bash, zsh, sh) - default
  - fish
  - powershell

Usage:
  # POSIX shells (bash/zsh/sh)
  eval $(deskctl auth export)

  # Fish shell
  eval (deskctl auth export --shell fish)

  # PowerShell
  deskctl auth export --shell powershell | Invoke-Expression`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&shellFormat, "shell", "", "Shell format: posix, fish, powershell (auto-detected if not specified)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := config.MustFromContext(cmd.Context())

	sess, err := cfg.Sessions.Current()
	if err != nil || sess == nil {
		return fmt.Errorf("not logged in\n\nPlease run 'deskctl auth login' first")
	}

	if shellFormat == "" {
		shellFormat = detectShell()
	}
	shellFormat = strings.ToLower(shellFormat)

	serverURL := cfg.Provider.ServerURL()
	switch shellFormat {
	case "posix", "bash", "zsh", "sh":
		printPosixExport(sess.Token, serverURL)
	case "fish":
		printFishExport(sess.Token, serverURL)
	case "powershell", "pwsh", "ps1":
		printPowerShellExport(sess.Token, serverURL)
	default:
		return fmt.Errorf("unsupported shell format: %s\n\nSupported formats: posix, fish, powershell", shellFormat)
	}

	return nil
}

// detectShell attempts to detect the current shell from the SHELL environment variable
func detectShell() string {
	shell := os.Getenv("SHELL")
	if shell == "" {
		return "posix"
	}

	switch filepath.Base(shell) {
	case "fish":
		return "fish"
	case "pwsh", "powershell":
		return "powershell"
	default:
		return "posix"
	}
}

func printPosixExport(token, serverURL string) {
	if isTerminal(os.Stdout) {
		fmt.Fprintln(os.Stderr, "# Run this command to configure your environment:")
		fmt.Fprintln(os.Stderr, "#   eval $(deskctl auth export)")
		fmt.Fprintln(os.Stderr, "")
	}
	fmt.Printf("export DESK_TOKEN=\"%s\"\n", token)
	fmt.Printf("export DESK_SERVER_URL=\"%s\"\n", serverURL)
}

func printFishExport(token, serverURL string) {
	if isTerminal(os.Stdout) {
		fmt.Fprintln(os.Stderr, "# Run this command to configure your environment:")
		fmt.Fprintln(os.Stderr, "#   eval (deskctl auth export --shell fish)")
		fmt.Fprintln(os.Stderr, "")
	}
	fmt.Printf("set -x DESK_TOKEN \"%s\"\n", token)
	fmt.Printf("set -x DESK_SERVER_URL \"%s\"\n", serverURL)
}

func printPowerShellExport(token, serverURL string) {
	if isTerminal(os.Stdout) {
		fmt.Fprintln(os.Stderr, "# Run this command to configure your environment:")
		fmt.Fprintln(os.Stderr, "#   deskctl auth export --shell powershell | Invoke-Expression")
		fmt.Fprintln(os.Stderr, "")
	}
	fmt.Printf("$env:DESK_TOKEN=\"%s\"\n", token)
	fmt.Printf("$env:DESK_SERVER_URL=\"%s\"\n", serverURL)
}

// isTerminal checks if the given file is a terminal (TTY)
func isTerminal(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
