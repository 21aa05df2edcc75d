package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"forfettario/internal/reconciliation"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Bank balance and the amount safe to withdraw",
	Long: `Reconcile the theoretical bank balance (net from invoices, minus withdrawals
and outflows, plus inflows, cumulative up to the end of the year) and compute
the tax reserve: the balance still due for the year plus the first advance of
the next one. What is left is safe to withdraw.

Tax payments are the outflows filed under TAX_CATEGORY (default "Tasse").`,
	Example: `  forfettario balance --year 2025
  forfettario balance --year 2025 --json`,
	RunE: runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)

	balanceCmd.Flags().Int("year", 0, "Fiscal year (default FISCAL_YEAR or the year of the tax rates)")
}

func runBalance(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, "balance")
	if err != nil {
		return err
	}
	defer a.Close()

	year := a.referenceYear(cmd)
	if year <= 0 {
		return fmt.Errorf("a fiscal year is required")
	}

	l, err := a.snapshot(cmd.Context())
	if err != nil {
		return err
	}

	reserve, err := a.reconciler.Reserve(l, year)
	if err != nil {
		return err
	}

	a.log.Info().
		Int("year", year).
		Str("net_available", reserve.Balance.NetAvailable.StringFixed(2)).
		Str("safe_net_available", reserve.SafeNetAvailable.StringFixed(2)).
		Msg("Reserve computed")

	if jsonOutput(cmd) {
		return writeJSON(cmd.OutOrStdout(), reserve)
	}
	printReserve(cmd.OutOrStdout(), reserve)
	return nil
}

func printReserve(w io.Writer, r reconciliation.Reserve) {
	header(w, fmt.Sprintf("SALDO E ACCANTONAMENTO %d", r.Year))

	b := r.Balance
	amountLine(w, "Netto da fatture", b.NetFromInvoices)
	amountLine(w, "Prelievi", b.TotalWithdrawals.Neg())
	amountLine(w, "Uscite", b.TotalOutflows.Neg())
	amountLine(w, "Entrate", b.TotalInflows)
	amountLine(w, "Saldo conto teorico", b.NetAvailable)
	fmt.Fprintln(w)

	amountLine(w, fmt.Sprintf("Tasse teoriche %d", r.Year), r.TheoreticalTaxForYear)
	amountLine(w, fmt.Sprintf("Tasse pagate nel %d", r.Year-1), r.TaxesPaidPriorYear)
	amountLine(w, fmt.Sprintf("Tasse pagate nel %d", r.Year), r.TaxesAlreadyPaid)
	amountLine(w, fmt.Sprintf("Saldo dovuto %d", r.Year), r.BalanceDueForYear)
	amountLine(w, fmt.Sprintf("Primo acconto %d", r.Year+1), r.FirstInstallmentNextYear)
	amountLine(w, "Da accantonare", r.TotalToReserve)
	fmt.Fprintln(w)

	labelColor.Fprintf(w, "%-32s", "Prelevabile in sicurezza:")
	if r.SafeNetAvailable.IsNegative() {
		fmt.Fprintln(w, colorAmount(r.SafeNetAvailable))
		warnColor.Fprintln(w, "Attenzione: il saldo non copre le tasse da accantonare")
		return
	}
	posColor.Fprintf(w, "%14s\n", formatEuro(r.SafeNetAvailable))
}
