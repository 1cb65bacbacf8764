package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDiscountsCmd creates the discounts command group
func NewDiscountsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discounts",
		Short: "Manage discounts",
	}
	cmd.AddCommand(newDiscountsListCmd(app))
	cmd.AddCommand(newDiscountsAddStudentCmd(app))
	cmd.AddCommand(newDiscountsRemoveStudentCmd(app))
	return cmd
}

func newDiscountsListCmd(app *App) *cobra.Command {
	var page, perPage int
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Discounts.List(page, perPage)
			if err != nil {
				return fmt.Errorf("failed to list discounts: %w", err)
			}

			out := cmd.OutOrStdout()
			if output != "" {
				return render(out, output, resp)
			}

			if len(resp.Data) == 0 {
				fmt.Fprintln(out, "No discounts found.")
				return nil
			}
			for _, d := range resp.Data {
				fmt.Fprintf(out, "%s  %-30s %5.1f%%  %d students\n", d.ID, d.Name, d.Percentage, len(d.StudentIDs))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", 10, "Items per page")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format (json or yaml)")
	return cmd
}

func newDiscountsAddStudentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add-student <discount-id> <student-id>",
		Short: "Add a student to a discount",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			discount, err := app.Discounts.AddStudent(args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to add student: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Student added to %s (%d members)\n", discount.Name, len(discount.StudentIDs))
			return nil
		},
	}
}

func newDiscountsRemoveStudentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-student <discount-id> <student-id>",
		Short: "Remove a student from a discount",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			discount, err := app.Discounts.RemoveStudent(args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to remove student: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Student removed from %s (%d members)\n", discount.Name, len(discount.StudentIDs))
			return nil
		},
	}
}
