package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"forfettario/internal/cashflow"
	"forfettario/internal/ledger"
	"forfettario/pkg/models"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Outflows or inflows grouped by category",
	Long: `Group outflows (default) or inflows by normalized category, largest first,
with each category's share of the group. Movements excluded from charts and the
opening balance are left out.`,
	Example: `  forfettario categories --year 2025
  forfettario categories --kind inflows`,
	RunE: runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)

	categoriesCmd.Flags().String("kind", "outflows", "outflows or inflows")
	categoriesCmd.Flags().Int("year", 0, "Fiscal year (default FISCAL_YEAR, 0 = all years)")
}

func runCategories(cmd *cobra.Command, args []string) error {
	kindFlag, _ := cmd.Flags().GetString("kind")
	kind, err := models.ParseKind(kindFlag)
	if err != nil {
		return err
	}
	if kind != models.KindOutflow && kind != models.KindInflow {
		return fmt.Errorf("--kind must be outflows or inflows, got %q", kindFlag)
	}

	a, err := newApp(cmd, "categories")
	if err != nil {
		return err
	}
	defer a.Close()

	year := a.year(cmd)
	l, err := a.snapshot(cmd.Context())
	if err != nil {
		return err
	}

	totals := cashflow.ByCategory(movementsOf(l, kind, year))

	if jsonOutput(cmd) {
		return writeJSON(cmd.OutOrStdout(), totals)
	}
	printCategories(cmd.OutOrStdout(), kind, year, totals)
	return nil
}

// movementsOf returns the outflows or inflows of year as aggregation input.
func movementsOf(l models.Ledger, kind models.Kind, year int) []cashflow.Movement {
	var all []cashflow.Movement
	if kind == models.KindInflow {
		all = cashflow.FromInflows(l.Inflows)
	} else {
		all = cashflow.FromOutflows(l.Outflows)
	}

	var out []cashflow.Movement
	for _, m := range all {
		if m.Date.InYear(year) {
			out = append(out, m)
		}
	}
	return out
}

func printCategories(w io.Writer, kind models.Kind, year int, totals []cashflow.CategoryTotal) {
	header(w, fmt.Sprintf("%s PER CATEGORIA %s", strings.ToUpper(ledger.SheetName(kind)), yearLabel(year)))
	if len(totals) == 0 {
		fmt.Fprintln(w, "Nessun movimento.")
		return
	}
	for _, t := range totals {
		fmt.Fprintf(w, "%-28s %14s %8s\n", truncate(t.Category, 28), formatEuro(t.Total), formatPercent(t.PercentageOfGroup))
	}
}
