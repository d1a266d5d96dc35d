package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/catalog-service/internal/config"
	"github.com/spec-kit/catalog-service/internal/observability"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply SQL migrations for the configured storage driver",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.Storage.Driver == config.DriverMemory {
				return fmt.Errorf("migrate needs a SQL storage driver, got %q", cfg.Storage.Driver)
			}
			logger, err := observability.NewLogger(cfg.Logger)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			store, err := openStorage(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()
			return store.migrate(cmd.Context(), true, logger)
		},
	}
}
