package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the LearnHub client CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learnhub",
		Short: "LearnHub client - session, catalog and gateway",
		Long: `LearnHub client manages an authenticated session against the LearnHub
platform, works offline against the built-in demo accounts, and can serve
the browser-facing gateway.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newWhoamiCmd())
	cmd.AddCommand(newCoursesCmd())

	return cmd
}
