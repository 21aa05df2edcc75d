// Package kpi derives the headline metrics of a period from a ledger snapshot.
package kpi

import (
	"github.com/shopspring/decimal"

	"forfettario/internal/cashflow"
	"forfettario/internal/fiscal"
	"forfettario/pkg/models"
)

// NoClient is the name reported as best client when there are no invoices.
const NoClient = "N/A"

// BestClient is the top client of the period.
type BestClient struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// KPIs are the headline metrics of a period.
type KPIs struct {
	Year                   int             `json:"year,omitempty"`
	TotalIncome            decimal.Decimal `json:"total_income"`
	TotalExpense           decimal.Decimal `json:"total_expense"`
	NetBalance             decimal.Decimal `json:"net_balance"`
	AverageMonthlyInvoiced decimal.Decimal `json:"average_monthly_invoiced"`
	BestClient             BestClient      `json:"best_client"`
	InvoiceCount           int             `json:"invoice_count"`
	ClientCount            int             `json:"client_count"`
}

// Compute summarizes the ledger for year (0 for every year).
//
// Income is invoiced gross plus valid inflows; expense is valid outflows plus
// withdrawals. Opening balance and chart-excluded movements are left out.
func Compute(invoices []models.Invoice, outflows []models.Outflow, inflows []models.Inflow, withdrawals []models.Withdrawal, year int) KPIs {
	invoices = fiscal.FilterInvoices(invoices, year)

	invoiced := fiscal.TotalInvoiced(invoices)
	income := invoiced
	for _, in := range inflows {
		if in.Valid() && in.Date.InYear(year) {
			income = income.Add(in.Amount)
		}
	}

	expense := decimal.Zero
	for _, out := range outflows {
		if out.Valid() && out.Date.InYear(year) {
			expense = expense.Add(out.Amount)
		}
	}
	for _, w := range withdrawals {
		if w.Date.InYear(year) {
			expense = expense.Add(w.Amount)
		}
	}

	months := make(map[string]struct{})
	clients := make(map[string]struct{})
	for _, inv := range invoices {
		months[inv.Date.YearMonth()] = struct{}{}
		clients[inv.Client] = struct{}{}
	}

	average := decimal.Zero
	if len(months) > 0 {
		average = invoiced.Div(decimal.NewFromInt(int64(len(months))))
	}

	best := BestClient{Name: NoClient, Amount: decimal.Zero}
	if top := cashflow.RankClients(invoices, 1); len(top) > 0 {
		best = BestClient{Name: top[0].Client, Amount: top[0].Total}
	}

	return KPIs{
		Year:                   year,
		TotalIncome:            income,
		TotalExpense:           expense,
		NetBalance:             income.Sub(expense),
		AverageMonthlyInvoiced: average,
		BestClient:             best,
		InvoiceCount:           len(invoices),
		ClientCount:            len(clients),
	}
}

// FromLedger is Compute over a whole snapshot.
func FromLedger(l models.Ledger, year int) KPIs {
	return Compute(l.Invoices, l.Outflows, l.Inflows, l.Withdrawals, year)
}
