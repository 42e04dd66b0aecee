package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parniiyan/To-do-list/core"
)

func renormalizeCmd(configPath *string) *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "renormalize",
		Short: "Rewrite task positions to 1..n, keeping their order",
		Long: `Rewrite task positions to dense integers, keeping the current order.

Clients insert between neighbours by picking fractional positions; after
many moves values can collide or run out of precision. Run this from time
to time for each user (--user) or for public tasks (no flag).`,
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

			id := core.Anonymous()
			if userID > 0 {
				id = core.UserIdentity(userID)
			}

			n, err := core.NewService(storage).RenormalizePositions(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("renormalize positions: %w", err)
			}
			log.Info("positions renormalized", "user_id", userID, "tasks", n)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user id whose scope to renormalize (0 = public tasks only)")
	return cmd
}
