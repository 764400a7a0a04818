package main

import (
	"github.com/sangkips/cashdesk-api/internal/app"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default admin and a sample catalog",
	Long: `Creates the ADMIN_USERNAME account when it does not exist. With
--catalog, an empty catalog also gets a few sample service types and services.`,
	Example: `  cashctl seed
  cashctl seed --catalog`,
	RunE: func(cmd *cobra.Command, args []string) error {
		withCatalog, _ := cmd.Flags().GetBool("catalog")
		_, svc, err := openServices()
		if err != nil {
			return err
		}
		return app.Seed(cmd.Context(), cfg, svc, withCatalog)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().Bool("catalog", false, "Also create sample catalog entries when the catalog is empty")
}
