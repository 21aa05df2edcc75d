package fiscal_test

import (
	"fmt"

	"github.com/shopspring/decimal"

	"forfettario/internal/fiscal"
	"forfettario/pkg/models"
)

// Example shows the annual summary of three invoices with the 2025 rates.
func Example() {
	engine := fiscal.NewEngine(fiscal.DefaultRates())

	invoices := []models.Invoice{
		{ID: "1", Date: "2025-01-10", Client: "Acme", GrossAmount: decimal.NewFromInt(1000)},
		{ID: "2", Date: "2025-02-15", Client: "Beta", GrossAmount: decimal.NewFromInt(2000)},
		{ID: "3", Date: "2025-03-20", Client: "Acme", GrossAmount: decimal.NewFromInt(500)},
	}

	s := engine.AnnualSummary(invoices)
	fmt.Println("taxable:", s.TaxableIncome.StringFixed(2))
	fmt.Println("total tax:", s.TotalTax.StringFixed(2))
	fmt.Println("net:", s.NetFromInvoices.StringFixed(2))
	fmt.Println("burden %:", s.TaxBurdenPercentage().StringFixed(2))
	// Output:
	// taxable: 2730.00
	// total tax: 812.63
	// net: 2687.37
	// burden %: 23.22
}

// ExampleEngine_PerInvoiceBreakdown shows the split of a single invoice.
func ExampleEngine_PerInvoiceBreakdown() {
	engine := fiscal.NewEngine(fiscal.DefaultRates())

	rows := engine.PerInvoiceBreakdown([]models.Invoice{
		{ID: "F-001", Date: "2025-04-01", GrossAmount: decimal.NewFromInt(1000)},
	})
	for _, row := range rows {
		fmt.Println(row.ID, row.TaxAndContributions, row.Net)
	}
	// Output:
	// F-001 232.1787 767.8213
}
