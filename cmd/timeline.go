package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"forfettario/internal/cashflow"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Running bank balance, one point per movement",
	Long: `Merge invoices (gross), inflows, outflows and withdrawals in date order and
print the running balance after each of them. The balance starts at zero at
the beginning of the selected year.`,
	RunE: runTimeline,
}

func init() {
	rootCmd.AddCommand(timelineCmd)

	timelineCmd.Flags().Int("year", 0, "Fiscal year (default FISCAL_YEAR, 0 = all years)")
}

func runTimeline(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, "timeline")
	if err != nil {
		return err
	}
	defer a.Close()

	year := a.year(cmd)
	l, err := a.snapshot(cmd.Context())
	if err != nil {
		return err
	}

	points := cashflow.CumulativeBalance(l.Invoices, l.Outflows, l.Inflows, l.Withdrawals, year)

	if jsonOutput(cmd) {
		return writeJSON(cmd.OutOrStdout(), points)
	}
	printTimeline(cmd.OutOrStdout(), year, points)
	return nil
}

func printTimeline(w io.Writer, year int, points []cashflow.BalancePoint) {
	header(w, "ANDAMENTO SALDO "+yearLabel(year))
	if len(points) == 0 {
		fmt.Fprintln(w, "Nessun movimento.")
		return
	}
	for _, p := range points {
		fmt.Fprintf(w, "%s %s\n", p.Date, colorAmount(p.RunningBalance))
	}
}
