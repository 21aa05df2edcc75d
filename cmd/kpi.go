package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"forfettario/internal/kpi"
)

var kpiCmd = &cobra.Command{
	Use:   "kpi",
	Short: "Headline indicators for the dashboard",
	RunE:  runKPI,
}

func init() {
	rootCmd.AddCommand(kpiCmd)

	kpiCmd.Flags().Int("year", 0, "Fiscal year (default FISCAL_YEAR, 0 = all years)")
}

func runKPI(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, "kpi")
	if err != nil {
		return err
	}
	defer a.Close()

	year := a.year(cmd)
	l, err := a.snapshot(cmd.Context())
	if err != nil {
		return err
	}

	k := kpi.FromLedger(l, year)

	if jsonOutput(cmd) {
		return writeJSON(cmd.OutOrStdout(), k)
	}
	printKPI(cmd.OutOrStdout(), year, k)
	return nil
}

func printKPI(w io.Writer, year int, k kpi.KPIs) {
	header(w, "INDICATORI "+yearLabel(year))
	amountLine(w, "Entrate totali", k.TotalIncome)
	amountLine(w, "Uscite totali", k.TotalExpense)
	amountLine(w, "Saldo netto", k.NetBalance)
	amountLine(w, "Media mensile fatturato", k.AverageMonthlyInvoiced)
	labelColor.Fprintf(w, "%-32s", "Miglior cliente:")
	fmt.Fprintf(w, "%s (%s)\n", k.BestClient.Name, formatEuro(k.BestClient.Amount))
	labelColor.Fprintf(w, "%-32s", "Fatture / clienti:")
	fmt.Fprintf(w, "%d / %d\n", k.InvoiceCount, k.ClientCount)
}
