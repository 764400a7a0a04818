package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	"github.com/sangkips/cashdesk-api/pkg/money"
	"github.com/spf13/cobra"
)

var closingsCmd = &cobra.Command{
	Use:   "closings",
	Short: "Read the cash closing history",
}

var closingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the most recent closings, newest first",
	RunE:  runClosingsList,
}

var closingsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the most recent closings to an .xlsx file",
	Example: `  # Export to the current directory with the default name
  cashctl closings export

  # Export the last 100 closings into reports/
  cashctl closings export --limit 100 --dir reports`,
	RunE: runClosingsExport,
}

func init() {
	rootCmd.AddCommand(closingsCmd)
	closingsCmd.AddCommand(closingsListCmd, closingsExportCmd)

	closingsCmd.PersistentFlags().Int("limit", 0, "Number of closings (0 uses CLOSING_HISTORY_DEFAULT)")
	closingsExportCmd.Flags().String("dir", ".", "Directory the report is written to")
}

func runClosingsList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	_, svc, err := openServices()
	if err != nil {
		return err
	}

	closings, err := svc.Closings.ListRecent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	return writeClosings(cmd.OutOrStdout(), closings, svc.Closings.Location())
}

// writeClosings prints one row per closing. BusinessDay is a calendar date
// and is formatted as stored; only Date is moved into loc.
func writeClosings(out io.Writer, closings []entity.CashClosing, loc *time.Location) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FECHA\tDÍA\tOPERADOR\tAPERTURA\tCIERRE\tVENTAS\tFACTURAS")
	for _, c := range closings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			c.Date.In(loc).Format("02/01/2006 15:04"),
			c.BusinessDay.Format("02/01/2006"),
			c.OperatorName,
			money.Format(c.OpeningCash),
			money.Format(c.ClosingCash),
			money.Format(c.TotalSales),
			c.InvoiceCount,
		)
	}
	return w.Flush()
}

func runClosingsExport(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	dir, _ := cmd.Flags().GetString("dir")
	_, svc, err := openServices()
	if err != nil {
		return err
	}

	report, err := svc.Reports.ExportClosings(cmd.Context(), limit)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, report.Filename)
	if err := os.WriteFile(path, report.Data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d closings written to %s\n", report.Rows, path)
	return nil
}
