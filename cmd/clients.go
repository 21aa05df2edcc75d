package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"forfettario/internal/cashflow"
	"forfettario/internal/fiscal"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Clients ranked by invoiced amount",
	Example: `  # Top 5 clients of 2025
  forfettario clients --year 2025 --top 5`,
	RunE: runClients,
}

func init() {
	rootCmd.AddCommand(clientsCmd)

	clientsCmd.Flags().Int("top", 0, "Show only the first N clients (0 = all)")
	clientsCmd.Flags().Int("year", 0, "Fiscal year (default FISCAL_YEAR, 0 = all years)")
}

func runClients(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, "clients")
	if err != nil {
		return err
	}
	defer a.Close()

	top, _ := cmd.Flags().GetInt("top")
	year := a.year(cmd)

	l, err := a.snapshot(cmd.Context())
	if err != nil {
		return err
	}

	ranking := cashflow.RankClients(fiscal.FilterInvoices(l.Invoices, year), top)

	if jsonOutput(cmd) {
		return writeJSON(cmd.OutOrStdout(), ranking)
	}
	printClients(cmd.OutOrStdout(), year, ranking)
	return nil
}

func printClients(w io.Writer, year int, ranking []cashflow.ClientTotal) {
	header(w, "CLIENTI "+yearLabel(year))
	if len(ranking) == 0 {
		fmt.Fprintln(w, "Nessuna fattura.")
		return
	}
	for i, c := range ranking {
		fmt.Fprintf(w, "%2d. %-26s %14s %8s  (%d fatture)\n", i+1, truncate(c.Client, 26), formatEuro(c.Total), formatPercent(c.PercentageOfGroup), c.Count)
	}
}
