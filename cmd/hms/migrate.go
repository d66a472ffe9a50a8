package main

import (
	"time"

	"github.com/spf13/cobra"
)

func (a *app) migrateCommand() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the schema and recompute stored risk scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			updated, skipped, err := store.RecomputeRiskScores()
			if err != nil {
				return err
			}
			a.log.Info("recomputed risk scores", "updated", updated, "skipped", skipped)

			if seed {
				n, err := store.SeedDemoData(time.Now())
				if err != nil {
					return err
				}
				a.log.Info("seeded demo data", "created", n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "insert demo risk assessments and incidents")
	return cmd
}
