package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datahuba/kyc-client/internal/services"
)

// NewCoursesCmd creates the courses command group
func NewCoursesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Manage courses",
	}
	cmd.AddCommand(newCoursesListCmd(app))
	cmd.AddCommand(newCoursesStudentsCmd(app))
	cmd.AddCommand(newCoursesDeleteCmd(app))
	return cmd
}

func newCoursesListCmd(app *App) *cobra.Command {
	var page, perPage int
	var query, courseType, modality, output string
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List courses",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := &services.CourseFilters{
				Query:      query,
				CourseType: courseType,
				Modality:   modality,
			}
			if cmd.Flags().Changed("active") {
				filters.Active = &activeOnly
			}

			resp, err := app.Courses.List(page, perPage, filters)
			if err != nil {
				return fmt.Errorf("failed to list courses: %w", err)
			}

			out := cmd.OutOrStdout()
			if output != "" {
				return render(out, output, resp)
			}

			if len(resp.Data) == 0 {
				fmt.Fprintln(out, "No courses found.")
				return nil
			}
			for _, c := range resp.Data {
				status := "inactive"
				if c.Active {
					status = "active"
				}
				fmt.Fprintf(out, "%s  %-12s %-40s %-12s %s\n", c.ID, c.Code, c.ProgramName, c.Modality, status)
			}
			fmt.Fprintf(out, "\nPage %d of %d (%d courses)\n", resp.Meta.Page, resp.Meta.TotalPages, resp.Meta.TotalItems)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", 10, "Items per page")
	cmd.Flags().StringVar(&query, "search", "", "Search text")
	cmd.Flags().StringVar(&courseType, "type", "", "Filter by course type")
	cmd.Flags().StringVar(&modality, "modality", "", "Filter by modality")
	cmd.Flags().BoolVar(&activeOnly, "active", false, "Filter by active flag")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format (json or yaml)")
	return cmd
}

func newCoursesStudentsCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "students <course-id>",
		Short: "Show the roster of a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := app.Courses.Students(args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch roster: %w", err)
			}

			out := cmd.OutOrStdout()
			if output != "" {
				return render(out, output, roster)
			}

			if len(roster) == 0 {
				fmt.Fprintln(out, "No students enrolled.")
				return nil
			}
			for _, st := range roster {
				fmt.Fprintf(out, "%s  %-30s %-10s paid %.2f of %.2f\n",
					st.StudentID, st.Name, st.Enrollment.Status,
					st.Financial.TotalPaid, st.Financial.TotalDue)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format (json or yaml)")
	return cmd
}

func newCoursesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <course-id>",
		Short: "Delete a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			course, err := app.Courses.Delete(args[0])
			if err != nil {
				return fmt.Errorf("failed to delete course: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted course %s (%s)\n", course.Code, course.ProgramName)
			return nil
		},
	}
}
