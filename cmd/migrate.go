package cmd

import (
	"github.com/spf13/cobra"

	"github.com/monishpeddapally/hostel-management-system/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := bootstrap()
		if err != nil {
			return err
		}
		defer e.close()

		if err := config.Migrate(e.db); err != nil {
			return err
		}
		e.log.Info("schema migrated")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default admin, room types and rooms into empty tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := bootstrap()
		if err != nil {
			return err
		}
		defer e.close()

		if err := config.Migrate(e.db); err != nil {
			return err
		}
		return config.SeedDatabase(e.db, e.log)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd)
}
