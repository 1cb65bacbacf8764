package commands

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/datahuba/kyc-client/internal/auth"
	"github.com/datahuba/kyc-client/internal/session"
)

// NewLoginCmd creates the login command
func NewLoginCmd(app *App) *cobra.Command {
	var username, password string
	var asStudent, asAdmin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the academy backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			loginType := session.LoginTypeUnset
			if asStudent {
				loginType = session.LoginTypeStudent
			} else if asAdmin {
				loginType = session.LoginTypeAdmin
			}
			return runLogin(app, loginType, username, password, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (or set KYC_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set KYC_PASSWORD, will prompt if not provided)")
	cmd.Flags().BoolVar(&asStudent, "student", false, "Use the student login flow")
	cmd.Flags().BoolVar(&asAdmin, "admin", false, "Use the administrative login flow")
	cmd.MarkFlagsMutuallyExclusive("student", "admin")

	return cmd
}

func runLogin(app *App, loginType session.LoginType, username, password string, out io.Writer) error {
	// Check for environment variables (useful for scripting)
	if username == "" {
		username = os.Getenv("KYC_USERNAME")
	}
	if password == "" {
		password = os.Getenv("KYC_PASSWORD")
	}

	if username == "" {
		return fmt.Errorf("username is required (use --username flag or KYC_USERNAME env var)")
	}

	// Resolve the login type: explicit flag wins, then the persisted choice,
	// then an interactive prompt.
	if loginType == session.LoginTypeUnset {
		loginType = app.Session.Snapshot().LoginType
	}
	if loginType == session.LoginTypeUnset {
		if !term.IsTerminal(int(syscall.Stdin)) {
			return fmt.Errorf("login type is required in non-interactive mode (use --admin or --student)")
		}
		prompt := promptui.Select{
			Label: "Login as",
			Items: []string{"admin", "student"},
		}
		_, choice, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("failed to select login type: %w", err)
		}
		loginType = session.LoginType(choice)
	}
	if err := app.Session.SetLoginType(loginType); err != nil {
		return fmt.Errorf("failed to persist login type: %w", err)
	}

	// Prompt for password if not provided via flag or env var
	if password == "" {
		if !term.IsTerminal(int(syscall.Stdin)) {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or KYC_PASSWORD env var)")
		}
		fmt.Fprint(out, "Password: ")
		bytePassword, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = string(bytePassword)
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Logging in as %s...\n", loginType)

	if err := app.Session.Login(auth.Credentials{Username: username, Password: password}); err != nil {
		state := app.Session.Snapshot()
		if state.Err != "" {
			return fmt.Errorf("login failed: %s", state.Err)
		}
		return fmt.Errorf("login failed: %w", err)
	}

	state := app.Session.Snapshot()
	fmt.Fprintln(out, "✓ Login successful!")
	if state.User != nil {
		fmt.Fprintf(out, "  User: %s (%s)\n", state.User.Username, state.User.Email)
		fmt.Fprintf(out, "  Role: %s\n", state.Role())
	}
	return nil
}
