package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datahuba/kyc-client/internal/services"
	"github.com/datahuba/kyc-client/internal/types"
)

// NewEnrollmentsCmd creates the enrollments command group
func NewEnrollmentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enrollments",
		Short: "Manage enrollments",
	}
	cmd.AddCommand(newEnrollmentsListCmd(app))
	cmd.AddCommand(newEnrollmentsCreateCmd(app))
	return cmd
}

func newEnrollmentsListCmd(app *App) *cobra.Command {
	var page, perPage int
	var status, courseID, studentID, output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List enrollments",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := &services.EnrollmentFilters{
				Status:    status,
				CourseID:  courseID,
				StudentID: studentID,
			}
			resp, err := app.Enrollments.List(page, perPage, filters)
			if err != nil {
				return fmt.Errorf("failed to list enrollments: %w", err)
			}

			out := cmd.OutOrStdout()
			if output != "" {
				return render(out, output, resp)
			}

			if len(resp.Data) == 0 {
				fmt.Fprintln(out, "No enrollments found.")
				return nil
			}
			for _, e := range resp.Data {
				fmt.Fprintf(out, "%s  %-10s student %s course %s  balance %.2f\n",
					e.ID, e.Status, e.StudentID, e.CourseID, e.PendingBalance)
			}
			fmt.Fprintf(out, "\nPage %d of %d (%d enrollments)\n", resp.Meta.Page, resp.Meta.TotalPages, resp.Meta.TotalItems)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", 10, "Items per page")
	cmd.Flags().StringVar(&status, "status", "", "Filter by enrollment status")
	cmd.Flags().StringVar(&courseID, "course", "", "Filter by course ID")
	cmd.Flags().StringVar(&studentID, "student", "", "Filter by student ID")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format (json or yaml)")
	return cmd
}

func newEnrollmentsCreateCmd(app *App) *cobra.Command {
	var studentID, courseID string
	var discount float64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Enroll a student in a course",
		RunE: func(cmd *cobra.Command, args []string) error {
			enrollment, err := app.Enrollments.Create(types.CreateEnrollmentRequest{
				StudentID:      studentID,
				CourseID:       courseID,
				CustomDiscount: discount,
			})
			if err != nil {
				return fmt.Errorf("failed to create enrollment: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Enrollment %s created (total due %.2f)\n", enrollment.ID, enrollment.TotalDue)
			return nil
		},
	}

	cmd.Flags().StringVar(&studentID, "student", "", "Student ID")
	cmd.Flags().StringVar(&courseID, "course", "", "Course ID")
	cmd.Flags().Float64Var(&discount, "discount", 0, "Custom discount percentage")
	_ = cmd.MarkFlagRequired("student")
	_ = cmd.MarkFlagRequired("course")
	return cmd
}
