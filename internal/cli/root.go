package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/datahuba/kyc-client/internal/api"
	"github.com/datahuba/kyc-client/internal/auth"
	"github.com/datahuba/kyc-client/internal/cli/commands"
	"github.com/datahuba/kyc-client/internal/config"
	"github.com/datahuba/kyc-client/internal/credentials"
	"github.com/datahuba/kyc-client/internal/logger"
	"github.com/datahuba/kyc-client/internal/services"
	"github.com/datahuba/kyc-client/internal/session"
)

var version = "dev" // Will be set during build

// Execute wires the application together and runs the root command
func Execute() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	creds, err := credentials.NewKeyringStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	client := api.New(cfg.API.BaseURL, creds)
	client.SetTimeout(cfg.API.Timeout)
	client.SetMaxRetries(cfg.API.MaxRetries)

	gateway := auth.NewGateway(client)
	store := session.New(gateway, creds)
	// One-shot rehydration before any command runs
	store.Init()

	app := &commands.App{
		Session:     store,
		Courses:     services.NewCourseService(client),
		Students:    services.NewStudentService(client),
		Payments:    services.NewPaymentService(client),
		Enrollments: services.NewEnrollmentService(client),
		Discounts:   services.NewDiscountService(client),
		Users:       services.NewUserService(client),
	}

	rootCmd := &cobra.Command{
		Use:           "kyc",
		Short:         "KyC - academic administration from the terminal",
		Long:          `KyC CLI - manage courses, students, enrollments, payments and discounts of the academy backend.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("kyc version %s\n", version)
		},
	})

	rootCmd.AddCommand(commands.NewLoginCmd(app))
	rootCmd.AddCommand(commands.NewLogoutCmd(app))
	rootCmd.AddCommand(commands.NewWhoamiCmd(app))
	rootCmd.AddCommand(commands.NewCoursesCmd(app))
	rootCmd.AddCommand(commands.NewStudentsCmd(app))
	rootCmd.AddCommand(commands.NewPaymentsCmd(app))
	rootCmd.AddCommand(commands.NewEnrollmentsCmd(app))
	rootCmd.AddCommand(commands.NewDiscountsCmd(app))
	rootCmd.AddCommand(commands.NewUsersCmd(app))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
