// Package reconciliation answers two questions about the tracked account:
// what the real bank balance is, and how much can be withdrawn right now
// without running short when the year's taxes fall due.
//
// Unlike the chart aggregates, the balance counts every movement, including the
// opening balance and movements excluded from charts: exclusion only hides a
// movement from charts, the money still moved.
package reconciliation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"forfettario/internal/category"
	"forfettario/internal/fiscal"
	"forfettario/pkg/models"
)

// ErrInvalidYear is returned when a year-scoped computation gets a year <= 0.
var ErrInvalidYear = errors.New("fiscal year must be positive")

// BankBalance is the reconciled balance of a ledger snapshot.
type BankBalance struct {
	NetFromInvoices  decimal.Decimal `json:"net_from_invoices"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals"`
	TotalOutflows    decimal.Decimal `json:"total_outflows"`
	TotalInflows     decimal.Decimal `json:"total_inflows"`
	NetAvailable     decimal.Decimal `json:"net_available"`
}

// Reserve is the year-scoped balance together with the tax reserve that has to
// stay on the account.
type Reserve struct {
	Year int `json:"year"`
	// Balance is cumulative over every movement dated in Year or earlier.
	Balance BankBalance `json:"balance"`

	TaxesAlreadyPaid         decimal.Decimal `json:"taxes_already_paid"`
	TaxesPaidPriorYear       decimal.Decimal `json:"taxes_paid_prior_year"`
	TheoreticalTaxForYear    decimal.Decimal `json:"theoretical_tax_for_year"`
	BalanceDueForYear        decimal.Decimal `json:"balance_due_for_year"`
	FirstInstallmentNextYear decimal.Decimal `json:"first_installment_next_year"`
	TotalToReserve           decimal.Decimal `json:"total_to_reserve"`
	SafeNetAvailable         decimal.Decimal `json:"safe_net_available"`
}

// Reconciler computes balances with a fiscal engine and a tax category.
type Reconciler struct {
	engine      *fiscal.Engine
	taxCategory string
}

// NewReconciler creates a reconciler. Outflows whose normalized category equals
// the normalized taxCategory count as tax payments; an empty taxCategory falls
// back to "Tasse".
func NewReconciler(engine *fiscal.Engine, taxCategory string) *Reconciler {
	if taxCategory == "" {
		taxCategory = category.Taxes
	}
	return &Reconciler{engine: engine, taxCategory: category.Normalize(taxCategory)}
}

// BankBalance reconciles the four collections:
// netAvailable = netFromInvoices + inflows − withdrawals − outflows.
func (r *Reconciler) BankBalance(invoices []models.Invoice, withdrawals []models.Withdrawal, outflows []models.Outflow, inflows []models.Inflow) BankBalance {
	b := BankBalance{
		NetFromInvoices:  r.engine.NetFromInvoices(invoices),
		TotalWithdrawals: decimal.Zero,
		TotalOutflows:    decimal.Zero,
		TotalInflows:     decimal.Zero,
	}
	for _, w := range withdrawals {
		b.TotalWithdrawals = b.TotalWithdrawals.Add(w.Amount)
	}
	for _, o := range outflows {
		b.TotalOutflows = b.TotalOutflows.Add(o.Amount)
	}
	for _, i := range inflows {
		b.TotalInflows = b.TotalInflows.Add(i.Amount)
	}

	b.NetAvailable = b.NetFromInvoices.
		Add(b.TotalInflows).
		Sub(b.TotalWithdrawals).
		Sub(b.TotalOutflows)
	return b
}

// LedgerBalance is BankBalance over a whole snapshot.
func (r *Reconciler) LedgerBalance(l models.Ledger) BankBalance {
	return r.BankBalance(l.Invoices, l.Withdrawals, l.Outflows, l.Inflows)
}

// Reserve computes the safe-to-withdraw figure as of the end of year.
//
// Tax payments recorded in year−1 stand in for the advances already paid
// toward year's liability. Whatever the year's theoretical tax exceeds them by
// is still due, plus the first advance for the following year.
//
// The reserve is always tied to one fiscal year: year <= 0 returns
// ErrInvalidYear instead of silently reconciling every year.
func (r *Reconciler) Reserve(l models.Ledger, year int) (Reserve, error) {
	if year <= 0 {
		return Reserve{}, fmt.Errorf("reconciliation.Reserve: %w: %d", ErrInvalidYear, year)
	}
	res := Reserve{
		Year:    year,
		Balance: r.LedgerBalance(UpToYear(l, year)),
	}

	res.TaxesAlreadyPaid = r.taxPayments(l.Outflows, year)
	res.TaxesPaidPriorYear = r.taxPayments(l.Outflows, year-1)
	res.TheoreticalTaxForYear = r.engine.TotalTax(fiscal.FilterInvoices(l.Invoices, year))

	res.BalanceDueForYear = decimal.Max(decimal.Zero, res.TheoreticalTaxForYear.Sub(res.TaxesPaidPriorYear))
	res.FirstInstallmentNextYear = res.TheoreticalTaxForYear.Mul(r.engine.Rates().FirstAdvanceRate)
	res.TotalToReserve = res.BalanceDueForYear.Add(res.FirstInstallmentNextYear)
	res.SafeNetAvailable = res.Balance.NetAvailable.Sub(res.TotalToReserve)
	return res, nil
}

// taxPayments sums the outflows of year filed under the tax category.
func (r *Reconciler) taxPayments(outflows []models.Outflow, year int) decimal.Decimal {
	total := decimal.Zero
	for _, o := range outflows {
		if o.Date.InYear(year) && category.Normalize(o.Category) == r.taxCategory {
			total = total.Add(o.Amount)
		}
	}
	return total
}

// UpToYear keeps every movement dated in year or earlier. Year 0 keeps everything.
func UpToYear(l models.Ledger, year int) models.Ledger {
	if year == 0 {
		return l
	}
	var out models.Ledger
	for _, inv := range l.Invoices {
		if inv.Date.UpToYear(year) {
			out.Invoices = append(out.Invoices, inv)
		}
	}
	for _, w := range l.Withdrawals {
		if w.Date.UpToYear(year) {
			out.Withdrawals = append(out.Withdrawals, w)
		}
	}
	for _, o := range l.Outflows {
		if o.Date.UpToYear(year) {
			out.Outflows = append(out.Outflows, o)
		}
	}
	for _, i := range l.Inflows {
		if i.Date.UpToYear(year) {
			out.Inflows = append(out.Inflows, i)
		}
	}
	return out
}
