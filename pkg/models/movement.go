package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OpeningBalanceCategory marks the opening balance transfer. It counts for the
// bank balance but never for charts or statistics.
const OpeningBalanceCategory = "Saldo Iniziale"

// Outflow is a business or personal expense (uscita) paid from the tracked account.
type Outflow struct {
	ID                 string          `json:"id"`
	Date               Date            `json:"date"`
	Description        string          `json:"description"`
	Category           string          `json:"category,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	Note               string          `json:"note,omitempty"`
	ExcludedFromCharts bool            `json:"excluded_from_charts"`
}

// Valid reports whether the outflow takes part in aggregates and statistics.
func (o Outflow) Valid() bool {
	return Chartable(o.Category, o.ExcludedFromCharts)
}

// Inflow is money received that is not an invoice payment (entrata): interest,
// refunds, cashback, opening balance transfers.
type Inflow struct {
	ID                 string          `json:"id"`
	Date               Date            `json:"date"`
	Description        string          `json:"description"`
	Category           string          `json:"category,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	Note               string          `json:"note,omitempty"`
	ExcludedFromCharts bool            `json:"excluded_from_charts"`
}

// Valid reports whether the inflow takes part in aggregates and statistics.
func (i Inflow) Valid() bool {
	return Chartable(i.Category, i.ExcludedFromCharts)
}

// Chartable reports whether a movement with this category and exclusion flag
// belongs in charts and statistics.
func Chartable(category string, excluded bool) bool {
	return !excluded && !strings.EqualFold(strings.TrimSpace(category), OpeningBalanceCategory)
}

// Ledger is a read-only snapshot of one owner's four collections.
type Ledger struct {
	Invoices    []Invoice    `json:"fatture"`
	Withdrawals []Withdrawal `json:"prelievi"`
	Outflows    []Outflow    `json:"uscite"`
	Inflows     []Inflow     `json:"entrate"`
}

// YearString formats a year the way dates carry it.
func YearString(year int) string {
	return fmt.Sprintf("%04d", year)
}
