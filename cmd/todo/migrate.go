package main

import (
	"github.com/spf13/cobra"
)

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(*configPath)
			if err != nil {
				return err
			}

			storage, err := openStorage(cfg, log)
			if err != nil {
				return err
			}
			defer closeStorage(storage, log)

			if err := storage.Migrate(); err != nil {
				return err
			}
			log.Info("migrations applied", "driver", cfg.DB.Driver)
			return nil
		},
	}
}
