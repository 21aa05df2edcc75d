package cmd

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"forfettario/internal/fiscal"
	"forfettario/internal/ledger"
	"forfettario/internal/simulation"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "What-if: the tax effect of one more invoice",
	Long: `Recompute the annual summary as if an extra invoice of the given gross amount
were issued today, and show how much of it would go to taxes and contributions.
Nothing is stored.`,
	Example: `  forfettario simulate --amount 2.500,00 --year 2025`,
	RunE:    runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().String("amount", "", "Gross amount of the extra invoice (e.g. 1500 or 1.500,00)")
	simulateCmd.Flags().Int("year", 0, "Fiscal year of the baseline invoices (default FISCAL_YEAR, 0 = all years)")
	simulateCmd.MarkFlagRequired("amount")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetString("amount")
	amount, err := ledger.ParseAmount(raw)
	if err != nil {
		return fmt.Errorf("invalid --amount: %w", err)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("--amount must be greater than zero")
	}

	a, err := newApp(cmd, "simulate")
	if err != nil {
		return err
	}
	defer a.Close()

	year := a.year(cmd)
	l, err := a.snapshot(cmd.Context())
	if err != nil {
		return err
	}

	c := a.simulator.Compare(fiscal.FilterInvoices(l.Invoices, year), amount)

	if jsonOutput(cmd) {
		return writeJSON(cmd.OutOrStdout(), c)
	}
	printSimulation(cmd.OutOrStdout(), year, amount, c)
	return nil
}

func printSimulation(w io.Writer, year int, amount decimal.Decimal, c simulation.Comparison) {
	header(w, "SIMULAZIONE FATTURA "+yearLabel(year))
	amountLine(w, "Fattura simulata", amount)
	amountLine(w, "Fatturato attuale", c.Current.TotalInvoiced)
	amountLine(w, "Fatturato simulato", c.Simulated.TotalInvoiced)
	amountLine(w, "Tasse attuali", c.Current.TotalTax)
	amountLine(w, "Tasse simulate", c.Simulated.TotalTax)
	amountLine(w, "Netto simulato", c.Simulated.NetFromInvoices)
	fmt.Fprintln(w)
	amountLine(w, "Tasse in più", c.ExtraTax)
	amountLine(w, "Netto in più", c.ExtraNet)
}
