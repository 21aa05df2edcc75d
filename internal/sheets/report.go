package sheets

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"forfettario/internal/fiscal"
)

// SheetWriter replaces the content of a sheet, as Service.ReplaceSheet does.
type SheetWriter interface {
	ReplaceSheet(ctx context.Context, sheetName string, values [][]interface{}) error
}

// Report is the annual summary exported to the report sheet.
type Report struct {
	Year       int
	Summary    fiscal.Summary
	TaxBurden  decimal.Decimal
	Breakdowns []fiscal.InvoiceBreakdown
}

// Rows lays the report out as sheet values: the per-invoice table first, then
// the summary block below an empty row. Amounts are rounded to cents.
func (r Report) Rows() [][]interface{} {
	rows := [][]interface{}{
		{"Fattura", "Lordo", "Tasse e contributi", "Netto"},
	}
	for _, b := range r.Breakdowns {
		rows = append(rows, []interface{}{b.ID, cents(b.GrossAmount), cents(b.TaxAndContributions), cents(b.Net)})
	}

	year := "Tutti"
	if r.Year != 0 {
		year = fmt.Sprintf("%d", r.Year)
	}

	s := r.Summary
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Anno", year},
		[]interface{}{"Totale fatturato", cents(s.TotalInvoiced)},
		[]interface{}{"Reddito imponibile", cents(s.TaxableIncome)},
		[]interface{}{"Contributi INPS", cents(s.SocialContribution)},
		[]interface{}{"Imponibile netto", cents(s.NetTaxableIncome)},
		[]interface{}{"Imposta sostitutiva", cents(s.SubstituteTax)},
		[]interface{}{"Totale tasse e contributi", cents(s.TotalTax)},
		[]interface{}{"Netto da fatture", cents(s.NetFromInvoices)},
		[]interface{}{"Pressione fiscale %", cents(r.TaxBurden)},
	)
	return rows
}

// WriteReport writes the report to sheetName.
func WriteReport(ctx context.Context, w SheetWriter, sheetName string, r Report) error {
	const op = "WriteReport"

	if err := w.ReplaceSheet(ctx, sheetName, r.Rows()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func cents(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
