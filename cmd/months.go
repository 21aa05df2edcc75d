package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"forfettario/internal/cashflow"
)

var monthsCmd = &cobra.Command{
	Use:   "months",
	Short: "Invoiced amount per month",
	RunE:  runMonths,
}

func init() {
	rootCmd.AddCommand(monthsCmd)

	monthsCmd.Flags().Int("year", 0, "Fiscal year (default FISCAL_YEAR, 0 = all years)")
}

func runMonths(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, "months")
	if err != nil {
		return err
	}
	defer a.Close()

	year := a.year(cmd)
	l, err := a.snapshot(cmd.Context())
	if err != nil {
		return err
	}

	months := cashflow.InvoicesByMonth(l.Invoices, year)

	if jsonOutput(cmd) {
		return writeJSON(cmd.OutOrStdout(), months)
	}
	printMonths(cmd.OutOrStdout(), year, months)
	return nil
}

func printMonths(w io.Writer, year int, months []cashflow.MonthTotal) {
	header(w, "FATTURATO MENSILE "+yearLabel(year))
	if len(months) == 0 {
		fmt.Fprintln(w, "Nessuna fattura.")
		return
	}
	for _, m := range months {
		fmt.Fprintf(w, "%s %d %14s\n", m.MonthLabel, m.Year, formatEuro(m.Total))
	}
}
