package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := app.Session.Snapshot()
			if !state.IsAuthenticated || state.User == nil {
				return fmt.Errorf("not authenticated. Run 'kyc login' first")
			}

			out := cmd.OutOrStdout()
			if output != "" {
				return render(out, output, state.User)
			}

			fmt.Fprintf(out, "User:  %s\n", state.User.Username)
			fmt.Fprintf(out, "Email: %s\n", state.User.Email)
			fmt.Fprintf(out, "Role:  %s\n", state.Role())
			fmt.Fprintf(out, "Type:  %s\n", state.LoginType)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format (json or yaml)")
	return cmd
}
