package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datahuba/kyc-client/internal/services"
)

// NewPaymentsCmd creates the payments command group
func NewPaymentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Manage payments",
	}
	cmd.AddCommand(newPaymentsListCmd(app))
	cmd.AddCommand(newPaymentsApproveCmd(app))
	cmd.AddCommand(newPaymentsRejectCmd(app))
	return cmd
}

func newPaymentsListCmd(app *App) *cobra.Command {
	var page, perPage int
	var status, courseID, studentID, output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payments",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := &services.PaymentFilters{
				Status:    status,
				CourseID:  courseID,
				StudentID: studentID,
			}
			resp, err := app.Payments.List(page, perPage, filters)
			if err != nil {
				return fmt.Errorf("failed to list payments: %w", err)
			}

			out := cmd.OutOrStdout()
			if output != "" {
				return render(out, output, resp)
			}

			if len(resp.Data) == 0 {
				fmt.Fprintln(out, "No payments found.")
				return nil
			}
			for _, p := range resp.Data {
				fmt.Fprintf(out, "%s  %-10s %10.2f  tx %s\n", p.ID, p.Status, p.Amount, p.TransactionNumber)
			}
			fmt.Fprintf(out, "\nPage %d of %d (%d payments)\n", resp.Meta.Page, resp.Meta.TotalPages, resp.Meta.TotalItems)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", 10, "Items per page")
	cmd.Flags().StringVar(&status, "status", "", "Filter by payment status")
	cmd.Flags().StringVar(&courseID, "course", "", "Filter by course ID")
	cmd.Flags().StringVar(&studentID, "student", "", "Filter by student ID")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format (json or yaml)")
	return cmd
}

func newPaymentsApproveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "approve <payment-id>",
		Short: "Approve a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payment, err := app.Payments.Approve(args[0])
			if err != nil {
				return fmt.Errorf("failed to approve payment: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Payment %s approved (%.2f)\n", payment.ID, payment.Amount)
			return nil
		},
	}
}

func newPaymentsRejectCmd(app *App) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "reject <payment-id>",
		Short: "Reject a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payment, err := app.Payments.Reject(args[0], reason)
			if err != nil {
				return fmt.Errorf("failed to reject payment: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Payment %s rejected\n", payment.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Rejection reason")
	_ = cmd.MarkFlagRequired("reason")
	return cmd
}
