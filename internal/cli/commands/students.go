package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// NewStudentsCmd creates the students command group
func NewStudentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "students",
		Short: "Manage students",
	}
	cmd.AddCommand(newStudentsListCmd(app))
	cmd.AddCommand(newStudentsGetCmd(app))
	cmd.AddCommand(newStudentsUploadCmd(app))
	return cmd
}

func newStudentsListCmd(app *App) *cobra.Command {
	var skip, limit int
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List students",
		RunE: func(cmd *cobra.Command, args []string) error {
			students, err := app.Students.List(skip, limit)
			if err != nil {
				return fmt.Errorf("failed to list students: %w", err)
			}

			out := cmd.OutOrStdout()
			if output != "" {
				return render(out, output, students)
			}

			if len(students) == 0 {
				fmt.Fprintln(out, "No students found.")
				return nil
			}
			for _, st := range students {
				fmt.Fprintf(out, "%s  %-12s %-30s %s\n", st.ID, st.RegistrationCode, st.Name, st.Email)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&skip, "skip", 0, "Number of records to skip")
	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum number of records")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format (json or yaml)")
	return cmd
}

func newStudentsGetCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get <student-id>",
		Short: "Show one student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			student, err := app.Students.Get(args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch student: %w", err)
			}

			out := cmd.OutOrStdout()
			if output != "" {
				return render(out, output, student)
			}

			fmt.Fprintf(out, "Name:     %s\n", student.Name)
			fmt.Fprintf(out, "Register: %s\n", student.RegistrationCode)
			fmt.Fprintf(out, "Email:    %s\n", student.Email)
			fmt.Fprintf(out, "Career:   %s\n", student.Career)
			fmt.Fprintf(out, "Courses:  %d\n", len(student.CourseIDs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format (json or yaml)")
	return cmd
}

func newStudentsUploadCmd(app *App) *cobra.Command {
	var kind, filePath string

	cmd := &cobra.Command{
		Use:   "upload <student-id>",
		Short: "Upload a student document (photo, cv, carnet, afiliacion)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(filePath)
			if err != nil {
				return fmt.Errorf("failed to open file: %w", err)
			}
			defer file.Close()

			id := args[0]
			fileName := filepath.Base(filePath)

			var uploadErr error
			switch kind {
			case "photo":
				_, uploadErr = app.Students.UploadPhoto(id, fileName, file)
			case "cv":
				_, uploadErr = app.Students.UploadCV(id, fileName, file)
			case "carnet":
				_, uploadErr = app.Students.UploadCard(id, fileName, file)
			case "afiliacion":
				_, uploadErr = app.Students.UploadAffiliation(id, fileName, file)
			default:
				return fmt.Errorf("unknown document kind %q (use photo, cv, carnet or afiliacion)", kind)
			}
			if uploadErr != nil {
				return fmt.Errorf("upload failed: %w", uploadErr)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Uploaded %s for student %s\n", kind, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "photo", "Document kind: photo, cv, carnet, afiliacion")
	cmd.Flags().StringVar(&filePath, "file", "", "Path to the file to upload")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
