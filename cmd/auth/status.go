package auth

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/helpdesk-tools/deskctl/internal/config"
	"github.com/helpdesk-tools/deskctl/internal/policy"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		sess, err := cfg.Sessions.Current()
		if err != nil || sess == nil {
			return fmt.Errorf("not logged in")
		}

		pterm.DefaultSection.Println("Authentication Status")
		pterm.Info.Printf("Logged in as: %s <%s>\n", sess.Name, sess.Email)
		pterm.Info.Printf("Role: %s (%s)\n", sess.Role.Label(), sess.Role)
		pterm.Info.Printf("Session saved: %s\n", sess.SavedAt.Format(time.RFC1123))
		pterm.Info.Printf("Server: %s\n", cfg.Provider.ServerURL())

		pol, ok := policy.For(sess.Role)
		if !ok {
			return fmt.Errorf("stored session has an unknown role (please re-login)")
		}

		pterm.DefaultSection.Println("Navigation")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VIEW\tROUTE")
		for _, item := range pol.Nav {
			fmt.Fprintf(w, "%s\t%s\n", item.Label, item.Path)
		}
		w.Flush()

		pterm.Info.Printf("Allowed route prefixes: %s\n", strings.Join(pol.AllowedPrefixes, ", "))
		pterm.Info.Printf("Default route: %s\n", pol.DefaultRoute)
		return nil
	},
}
