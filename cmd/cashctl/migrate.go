package main

import (
	"errors"

	"github.com/sangkips/cashdesk-api/internal/infrastructure/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Database.IsMemory() {
			return errors.New("migrate needs DB_DRIVER=postgres")
		}
		db, err := database.NewPostgresDB(&cfg.Database, false)
		if err != nil {
			return err
		}
		return database.AutoMigrate(db)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
