package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "engine",
		Short:         "Engine runs the session and service stack",
		Long:          `Engine serves HTTP with server-side sessions, applies database migrations and maintains session storage.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newSessionsCmd())
	return root
}
