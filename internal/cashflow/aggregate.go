// Package cashflow computes the chart aggregates of a ledger: totals by
// category, invoices by month, client rankings and the running balance.
//
// Movements in the opening balance pseudo-category or flagged as excluded from
// charts never enter these aggregates.
package cashflow

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"forfettario/internal/category"
	"forfettario/internal/fiscal"
	"forfettario/pkg/models"
)

// Movement is the common shape of outflows and inflows as seen by the aggregator.
type Movement struct {
	Date               models.Date
	Category           string
	Amount             decimal.Decimal
	ExcludedFromCharts bool
}

// Valid reports whether the movement takes part in aggregates.
func (m Movement) Valid() bool {
	return models.Chartable(m.Category, m.ExcludedFromCharts)
}

// FromOutflows adapts outflows to movements.
func FromOutflows(outflows []models.Outflow) []Movement {
	out := make([]Movement, 0, len(outflows))
	for _, o := range outflows {
		out = append(out, Movement{Date: o.Date, Category: o.Category, Amount: o.Amount, ExcludedFromCharts: o.ExcludedFromCharts})
	}
	return out
}

// FromInflows adapts inflows to movements.
func FromInflows(inflows []models.Inflow) []Movement {
	out := make([]Movement, 0, len(inflows))
	for _, i := range inflows {
		out = append(out, Movement{Date: i.Date, Category: i.Category, Amount: i.Amount, ExcludedFromCharts: i.ExcludedFromCharts})
	}
	return out
}

// CategoryTotal is one row of a category breakdown.
type CategoryTotal struct {
	Category          string          `json:"category"`
	Total             decimal.Decimal `json:"total"`
	PercentageOfGroup decimal.Decimal `json:"percentage_of_group"`
}

// ByCategory sums valid movements per normalized category, largest first.
// Ties are broken by category name so the output is deterministic.
func ByCategory(items []Movement) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	grand := decimal.Zero
	for _, m := range items {
		if !m.Valid() {
			continue
		}
		key := category.Normalize(m.Category)
		totals[key] = totals[key].Add(m.Amount)
		grand = grand.Add(m.Amount)
	}

	rows := make([]CategoryTotal, 0, len(totals))
	for name, total := range totals {
		rows = append(rows, CategoryTotal{
			Category:          name,
			Total:             total,
			PercentageOfGroup: fiscal.Percentage(total, grand),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Total.Cmp(rows[j].Total); c != 0 {
			return c > 0
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

var monthLabels = [...]string{"Gen", "Feb", "Mar", "Apr", "Mag", "Giu", "Lug", "Ago", "Set", "Ott", "Nov", "Dic"}

// MonthTotal is the invoiced amount of one calendar month.
type MonthTotal struct {
	MonthLabel string          `json:"month_label"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Total      decimal.Decimal `json:"total"`
}

// InvoicesByMonth groups invoices by calendar month in chronological order.
// Year 0 keeps every year.
func InvoicesByMonth(invoices []models.Invoice, year int) []MonthTotal {
	index := make(map[string]int)
	var rows []MonthTotal
	for _, inv := range fiscal.FilterInvoices(invoices, year) {
		key := inv.Date.YearMonth()
		i, ok := index[key]
		if !ok {
			y, m := splitYearMonth(key)
			rows = append(rows, MonthTotal{MonthLabel: monthLabel(m), Month: m, Year: y, Total: decimal.Zero})
			i = len(rows) - 1
			index[key] = i
		}
		rows[i].Total = rows[i].Total.Add(inv.GrossAmount)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].Month < rows[j].Month
	})
	return rows
}

func splitYearMonth(ym string) (int, int) {
	if len(ym) < 7 {
		return 0, 0
	}
	y, _ := strconv.Atoi(ym[:4])
	m, _ := strconv.Atoi(ym[5:7])
	return y, m
}

func monthLabel(month int) string {
	if month < 1 || month > 12 {
		return "?"
	}
	return monthLabels[month-1]
}

// ClientTotal is one row of the client ranking.
type ClientTotal struct {
	Client            string          `json:"client"`
	Total             decimal.Decimal `json:"total"`
	Count             int             `json:"count"`
	PercentageOfGroup decimal.Decimal `json:"percentage_of_group"`
}

// RankClients groups invoices by client, largest total first, truncated to topN.
// Percentages are relative to the total of all invoices. topN <= 0 keeps every client.
func RankClients(invoices []models.Invoice, topN int) []ClientTotal {
	index := make(map[string]int)
	var rows []ClientTotal
	grand := decimal.Zero
	for _, inv := range invoices {
		i, ok := index[inv.Client]
		if !ok {
			rows = append(rows, ClientTotal{Client: inv.Client, Total: decimal.Zero})
			i = len(rows) - 1
			index[inv.Client] = i
		}
		rows[i].Total = rows[i].Total.Add(inv.GrossAmount)
		rows[i].Count++
		grand = grand.Add(inv.GrossAmount)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total.GreaterThan(rows[j].Total)
	})
	if topN > 0 && len(rows) > topN {
		rows = rows[:topN]
	}
	for i := range rows {
		rows[i].PercentageOfGroup = fiscal.Percentage(rows[i].Total, grand)
	}
	return rows
}

// BalancePoint is the running balance after one movement.
type BalancePoint struct {
	Date           models.Date     `json:"date"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

type signedEntry struct {
	date   models.Date
	amount decimal.Decimal
}

// CumulativeBalance merges invoices and valid inflows (positive) with valid
// outflows and withdrawals (negative) into one timeline sorted by date, and
// emits the running sum after every entry. Entries on the same date keep their
// merge order. Year 0 keeps every year.
func CumulativeBalance(invoices []models.Invoice, outflows []models.Outflow, inflows []models.Inflow, withdrawals []models.Withdrawal, year int) []BalancePoint {
	var entries []signedEntry
	for _, inv := range invoices {
		if inv.Date.InYear(year) {
			entries = append(entries, signedEntry{inv.Date, inv.GrossAmount})
		}
	}
	for _, in := range inflows {
		if in.Valid() && in.Date.InYear(year) {
			entries = append(entries, signedEntry{in.Date, in.Amount})
		}
	}
	for _, out := range outflows {
		if out.Valid() && out.Date.InYear(year) {
			entries = append(entries, signedEntry{out.Date, out.Amount.Neg()})
		}
	}
	for _, w := range withdrawals {
		if w.Date.InYear(year) {
			entries = append(entries, signedEntry{w.Date, w.Amount.Neg()})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].date < entries[j].date
	})

	points := make([]BalancePoint, 0, len(entries))
	running := decimal.Zero
	for _, e := range entries {
		running = running.Add(e.amount)
		points = append(points, BalancePoint{Date: e.date, RunningBalance: running})
	}
	return points
}
