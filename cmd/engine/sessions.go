package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/engine/app"
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Maintain persisted sessions",
	}

	gc := &cobra.Command{
		Use:   "gc",
		Short: "Remove sessions idle for longer than SESSION_TTL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.New(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.CollectSessions(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d sessions\n", n)
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <session-id>...",
		Short: "Destroy one or more sessions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			for _, id := range args {
				if err := a.DestroySession(cmd.Context(), id); err != nil {
					return fmt.Errorf("remove %s: %w", id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed session %s\n", id)
			}
			return nil
		},
	}

	cmd.AddCommand(gc, rm)
	return cmd
}
