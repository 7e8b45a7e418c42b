package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/learnhub/learnhub-client/internal/core/domain"
)

// loginConfig holds the flags for the login command.
type loginConfig struct {
	username string
	password string
	remember bool
}

// newLoginCmd creates the login subcommand.
func newLoginCmd() *cobra.Command {
	cfg := &loginConfig{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogin(cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&cfg.password, "password", "p", "", "account password")
	cmd.Flags().BoolVar(&cfg.remember, "remember", false, "persist the identity so the session survives restarts")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func runLogin(cmd *cobra.Command, cfg *loginConfig) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	creds := domain.Credentials{
		Username:   cfg.username,
		Password:   cfg.password,
		RememberMe: cfg.remember,
	}
	if err := a.session.Login(cmd.Context(), creds); err != nil {
		return err
	}

	user := a.session.CurrentUser()
	cmd.Printf("logged in as %s %s (%s, role %d)\n", user.FirstName, user.LastName, user.Username, user.RoleID)
	return nil
}

// newLogoutCmd creates the logout subcommand.
func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the session and persisted state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			// Restore first so a persisted token gets its remote sign-out
			// notice; the local clear happens regardless.
			if err := a.session.LoadFromStorage(cmd.Context()); err != nil {
				a.log.Debug().Err(err).Msg("restore before logout failed")
			}
			if err := a.session.Logout(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("logged out")
			return nil
		},
	}
}

// newWhoamiCmd creates the whoami subcommand.
func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.session.LoadFromStorage(cmd.Context()); err != nil {
				return err
			}
			if !a.session.IsAuthenticated() {
				return fmt.Errorf("not authenticated, run \"learnhub login\"")
			}

			user := a.session.CurrentUser()
			cmd.Printf("%s %s <%s>\n", user.FirstName, user.LastName, user.Email)
			cmd.Printf("username:   %s\n", user.Username)
			cmd.Printf("department: %s\n", user.Department)
			cmd.Printf("position:   %s\n", user.Position)
			cmd.Printf("role:       %d\n", user.RoleID)
			return nil
		},
	}
}
