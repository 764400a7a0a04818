package main

import (
	"fmt"
	"time"

	"github.com/sangkips/cashdesk-api/pkg/utils"
	"github.com/spf13/cobra"
)

var purgeKeysCmd = &cobra.Command{
	Use:   "purge-keys",
	Short: "Delete expired idempotency keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, _, err := openServices()
		if err != nil {
			return err
		}
		n, err := repos.Idempotency.Purge(cmd.Context(), time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d expired keys deleted\n", n)
		return nil
	},
}

var sequencesCmd = &cobra.Command{
	Use:   "sequences",
	Short: "Show the last invoice number and NCF handed out",
	Example: `  cashctl sequences
  cashctl sequences --year 2024`,
	RunE: func(cmd *cobra.Command, args []string) error {
		year, _ := cmd.Flags().GetInt("year")
		if year == 0 {
			year = time.Now().Year()
		}
		repos, _, err := openServices()
		if err != nil {
			return err
		}

		invoices, err := repos.Sequences.Current(cmd.Context(), utils.InvoiceSeries(year))
		if err != nil {
			return err
		}
		ncf, err := repos.Sequences.Current(cmd.Context(), cfg.Billing.NCFPrefix)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if invoices == 0 {
			fmt.Fprintf(out, "%s: no invoices issued\n", utils.InvoiceSeries(year))
		} else {
			fmt.Fprintf(out, "%s: last %s\n", utils.InvoiceSeries(year), utils.FormatInvoiceNo(year, invoices))
		}
		if ncf == 0 {
			fmt.Fprintf(out, "%s: no fiscal receipts issued\n", cfg.Billing.NCFPrefix)
		} else {
			fmt.Fprintf(out, "%s: last %s\n", cfg.Billing.NCFPrefix, utils.FormatNCF(cfg.Billing.NCFPrefix, ncf))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(purgeKeysCmd, sequencesCmd)
	sequencesCmd.Flags().Int("year", 0, "Invoice series year (default: current year)")
}
