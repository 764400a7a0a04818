package main

import (
	"fmt"
	"os"

	"github.com/sangkips/cashdesk-api/internal/app"
	"github.com/sangkips/cashdesk-api/internal/config"
	"github.com/sangkips/cashdesk-api/internal/infrastructure/database"
	"github.com/sangkips/cashdesk-api/internal/infrastructure/memory"
	"github.com/sangkips/cashdesk-api/internal/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cashctl",
	Short: "Operations tool for the cash desk API",
	Long: `cashctl runs maintenance tasks against the cash desk database:
schema migration, seeding the default admin and catalog, and reading or
exporting the cash closing history.

Configuration is read from .env and the environment, as for the API.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		logger.Setup(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: os.Stderr})
	},
}

var cfg *config.Config

// Execute runs the root command.
func Execute() {
	log := logger.WithComponent("cashctl")

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openServices opens the configured storage and builds the services on it.
func openServices() (*app.Repositories, *app.Services, error) {
	loc, err := cfg.App.LoadLocation()
	if err != nil {
		return nil, nil, err
	}
	var repos *app.Repositories
	if cfg.Database.IsMemory() {
		repos = app.MemoryRepositories(memory.NewStore())
	} else {
		db, err := database.NewPostgresDB(&cfg.Database, false)
		if err != nil {
			return nil, nil, err
		}
		repos = app.PostgresRepositories(db)
	}
	return repos, app.NewServices(cfg, repos, app.Options{Location: loc}), nil
}
