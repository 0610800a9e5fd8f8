package cmd

import (
	"github.com/spf13/cobra"

	database "github.com/FACorreiaa/storefront-api/app/db"
)

func newMigrateCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
	}
	cmd.AddCommand(newMigrateUpCommand(rt), newMigrateDownCommand(rt))
	return cmd
}

func newMigrateUpCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbConfig, err := rt.databaseURL()
			if err != nil {
				return err
			}
			return database.RunMigrations(dbConfig.ConnectionURL, rt.logger)
		},
	}
}

func newMigrateDownCommand(rt *runtime) *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbConfig, err := rt.databaseURL()
			if err != nil {
				return err
			}
			return database.RollbackMigrations(dbConfig.ConnectionURL, steps, rt.logger)
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "number of migrations to roll back")
	return cmd
}
