package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/engine/app"
	"github.com/dmitrymomot/engine/core/config"
	"github.com/dmitrymomot/engine/core/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply PostgreSQL migrations, including the session table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg logger.Config
			if err := config.Load(&cfg); err != nil {
				return err
			}
			return app.Migrate(cmd.Context(), logger.NewFromConfig(cfg))
		},
	}
}
