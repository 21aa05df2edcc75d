package cmd

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"forfettario/internal/fiscal"
	"forfettario/internal/sheets"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Annual tax summary of the invoices",
	Long: `Compute the flat-rate tax chain on the invoices of a year: taxable income,
INPS contribution, substitute tax, total tax and net, with the tax burden and
the split of every single invoice.

With --export the summary is also written to the report sheet (REPORT_SHEET)
of the spreadsheet in GOOGLE_SHEET_URL.`,
	Example: `  # Summary of the current fiscal year
  forfettario summary --year 2025

  # Export to Google Sheets
  forfettario summary --year 2025 --export`,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().Int("year", 0, "Fiscal year (default FISCAL_YEAR, 0 = all years)")
	summaryCmd.Flags().Bool("export", false, "Write the summary to the Google Sheets report sheet")
}

type summaryOutput struct {
	Year      int                       `json:"year"`
	Summary   fiscal.Summary            `json:"summary"`
	TaxBurden decimal.Decimal           `json:"tax_burden_percentage"`
	Invoices  []fiscal.InvoiceBreakdown `json:"invoices"`
}

func runSummary(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, "summary")
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	year := a.year(cmd)

	l, err := a.snapshot(ctx)
	if err != nil {
		return err
	}

	invoices := fiscal.FilterInvoices(l.Invoices, year)
	sum := a.engine.AnnualSummary(invoices)
	out := summaryOutput{
		Year:      year,
		Summary:   sum,
		TaxBurden: sum.TaxBurdenPercentage(),
		Invoices:  a.engine.PerInvoiceBreakdown(invoices),
	}

	a.log.Info().
		Int("year", year).
		Int("invoices", len(invoices)).
		Str("total_tax", sum.TotalTax.StringFixed(2)).
		Msg("Annual summary computed")

	if export, _ := cmd.Flags().GetBool("export"); export {
		if a.cfg.GoogleSheetURL == "" {
			return fmt.Errorf("GOOGLE_SHEET_URL environment variable is required for --export")
		}
		svc, err := sheets.NewSheetsService(ctx, a.cfg.GoogleSheetURL)
		if err != nil {
			return fmt.Errorf("failed to initialize Google Sheets service: %w", err)
		}
		report := sheets.Report{Year: year, Summary: sum, TaxBurden: out.TaxBurden, Breakdowns: out.Invoices}
		if err := sheets.WriteReport(ctx, svc, a.cfg.ReportSheet, report); err != nil {
			return fmt.Errorf("failed to export summary: %w", err)
		}
		a.log.Info().Str("sheet", a.cfg.ReportSheet).Msg("Summary exported")
	}

	if jsonOutput(cmd) {
		return writeJSON(cmd.OutOrStdout(), out)
	}
	printSummary(cmd.OutOrStdout(), out)
	return nil
}

func printSummary(w io.Writer, out summaryOutput) {
	header(w, "RIEPILOGO FISCALE "+yearLabel(out.Year))

	if len(out.Invoices) > 0 {
		fmt.Fprintf(w, "%-20s %14s %14s %14s\n", "Fattura", "Lordo", "Tasse", "Netto")
		for _, b := range out.Invoices {
			fmt.Fprintf(w, "%-20s %14s %14s %14s\n", truncate(b.ID, 20), formatEuro(b.GrossAmount), formatEuro(b.TaxAndContributions), formatEuro(b.Net))
		}
		fmt.Fprintln(w)
	}

	s := out.Summary
	amountLine(w, "Totale fatturato", s.TotalInvoiced)
	amountLine(w, "Reddito imponibile", s.TaxableIncome)
	amountLine(w, "Contributi INPS", s.SocialContribution)
	amountLine(w, "Imponibile netto", s.NetTaxableIncome)
	amountLine(w, "Imposta sostitutiva", s.SubstituteTax)
	amountLine(w, "Totale tasse e contributi", s.TotalTax)
	amountLine(w, "Netto da fatture", s.NetFromInvoices)
	labelColor.Fprintf(w, "%-32s", "Pressione fiscale:")
	fmt.Fprintf(w, "%14s\n", formatPercent(out.TaxBurden))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
