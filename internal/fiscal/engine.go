// Package fiscal implements the flat-rate ("regime forfettario") tax formulas.
//
// All amounts are shopspring decimals. The formula chain only multiplies,
// adds and subtracts, which decimal does exactly, so per-invoice results sum to
// the aggregate without drift. Rounding is left to the presentation layer.
//
//	taxable      = invoiced × profitabilityCoefficient
//	contribution = taxable × socialContributionRate
//	netTaxable   = taxable − contribution
//	substitute   = netTaxable × substituteTaxRate
//	totalTax     = contribution + substitute
//	net          = invoiced − totalTax
package fiscal

import (
	"github.com/shopspring/decimal"

	"forfettario/pkg/models"
)

var hundred = decimal.NewFromInt(100)

// Engine evaluates the formulas for one set of rates. It holds no state besides
// the rates and is safe for concurrent use.
type Engine struct {
	rates Rates
}

// NewEngine creates an engine for the given rates. Rates are expected to be
// validated, see Rates.Validate.
func NewEngine(rates Rates) *Engine {
	return &Engine{rates: rates}
}

// Rates returns the rates the engine was built with.
func (e *Engine) Rates() Rates {
	return e.rates
}

// Summary is the annual summary of a set of invoices.
type Summary struct {
	TotalInvoiced      decimal.Decimal `json:"total_invoiced"`
	TaxableIncome      decimal.Decimal `json:"taxable_income"`
	SocialContribution decimal.Decimal `json:"social_contribution"`
	NetTaxableIncome   decimal.Decimal `json:"net_taxable_income"`
	SubstituteTax      decimal.Decimal `json:"substitute_tax"`
	TotalTax           decimal.Decimal `json:"total_tax"`
	NetFromInvoices    decimal.Decimal `json:"net_from_invoices"`
}

// InvoiceBreakdown is the tax split of a single invoice.
type InvoiceBreakdown struct {
	ID                  string          `json:"id"`
	GrossAmount         decimal.Decimal `json:"gross_amount"`
	TaxAndContributions decimal.Decimal `json:"tax_and_contributions"`
	Net                 decimal.Decimal `json:"net"`
}

// Compute runs the whole formula chain on a gross amount.
func (e *Engine) Compute(gross decimal.Decimal) Summary {
	taxable := gross.Mul(e.rates.ProfitabilityCoefficient)
	contribution := taxable.Mul(e.rates.SocialContributionRate)
	netTaxable := taxable.Sub(contribution)
	substitute := netTaxable.Mul(e.rates.SubstituteTaxRate)
	totalTax := contribution.Add(substitute)

	return Summary{
		TotalInvoiced:      gross,
		TaxableIncome:      taxable,
		SocialContribution: contribution,
		NetTaxableIncome:   netTaxable,
		SubstituteTax:      substitute,
		TotalTax:           totalTax,
		NetFromInvoices:    gross.Sub(totalTax),
	}
}

// TotalInvoiced sums the gross amount of the invoices.
func TotalInvoiced(invoices []models.Invoice) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		total = total.Add(inv.GrossAmount)
	}
	return total
}

func (e *Engine) TaxableIncome(invoices []models.Invoice) decimal.Decimal {
	return e.AnnualSummary(invoices).TaxableIncome
}

func (e *Engine) SocialContribution(invoices []models.Invoice) decimal.Decimal {
	return e.AnnualSummary(invoices).SocialContribution
}

func (e *Engine) NetTaxableIncome(invoices []models.Invoice) decimal.Decimal {
	return e.AnnualSummary(invoices).NetTaxableIncome
}

func (e *Engine) SubstituteTax(invoices []models.Invoice) decimal.Decimal {
	return e.AnnualSummary(invoices).SubstituteTax
}

// TotalTax is contribution plus substitute tax.
func (e *Engine) TotalTax(invoices []models.Invoice) decimal.Decimal {
	return e.AnnualSummary(invoices).TotalTax
}

// NetFromInvoices is what is left of the invoiced amount after all taxes.
func (e *Engine) NetFromInvoices(invoices []models.Invoice) decimal.Decimal {
	return e.AnnualSummary(invoices).NetFromInvoices
}

// AnnualSummary applies the formula chain to the total of the invoices.
func (e *Engine) AnnualSummary(invoices []models.Invoice) Summary {
	return e.Compute(TotalInvoiced(invoices))
}

// PerInvoiceBreakdown computes the split of every invoice on its own gross
// amount. Since the formulas are linear the rows sum to the aggregate.
func (e *Engine) PerInvoiceBreakdown(invoices []models.Invoice) []InvoiceBreakdown {
	rows := make([]InvoiceBreakdown, 0, len(invoices))
	for _, inv := range invoices {
		s := e.Compute(inv.GrossAmount)
		rows = append(rows, InvoiceBreakdown{
			ID:                  inv.ID,
			GrossAmount:         inv.GrossAmount,
			TaxAndContributions: s.TotalTax,
			Net:                 s.NetFromInvoices,
		})
	}
	return rows
}

// TaxBurdenPercentage is total tax over total invoiced, as a percentage.
// It is zero when nothing was invoiced.
func (e *Engine) TaxBurdenPercentage(invoices []models.Invoice) decimal.Decimal {
	return e.AnnualSummary(invoices).TaxBurdenPercentage()
}

// TaxBurdenPercentage is TotalTax / TotalInvoiced × 100, zero when nothing was invoiced.
func (s Summary) TaxBurdenPercentage() decimal.Decimal {
	return Percentage(s.TotalTax, s.TotalInvoiced)
}

// Percentage returns part / whole × 100, or zero when whole is zero.
func Percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole)
}

// FilterInvoices keeps the invoices dated in year. Year 0 keeps everything.
func FilterInvoices(invoices []models.Invoice, year int) []models.Invoice {
	if year == 0 {
		return invoices
	}
	out := make([]models.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.Date.InYear(year) {
			out = append(out, inv)
		}
	}
	return out
}
