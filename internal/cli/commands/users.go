package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewUsersCmd creates the users command group
func NewUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage backend users",
	}
	cmd.AddCommand(newUsersListCmd(app))
	return cmd
}

func newUsersListCmd(app *App) *cobra.Command {
	var page, perPage int
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List backend users",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Users.List(page, perPage)
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			out := cmd.OutOrStdout()
			if output != "" {
				return render(out, output, resp)
			}

			if len(resp.Data) == 0 {
				fmt.Fprintln(out, "No users found.")
				return nil
			}
			for _, u := range resp.Data {
				status := "inactive"
				if u.Active {
					status = "active"
				}
				fmt.Fprintf(out, "%s  %-20s %-30s %-12s %s\n", u.ID, u.Username, u.Email, u.Role, status)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", 10, "Items per page")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format (json or yaml)")
	return cmd
}
