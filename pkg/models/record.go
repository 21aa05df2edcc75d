package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind names one of the four ledger collections.
type Kind string

const (
	KindInvoice    Kind = "fatture"
	KindWithdrawal Kind = "prelievi"
	KindOutflow    Kind = "uscite"
	KindInflow     Kind = "entrate"
)

// Kinds lists every collection in a stable order.
var Kinds = []Kind{KindInvoice, KindWithdrawal, KindOutflow, KindInflow}

// ParseKind accepts a collection name in Italian (fatture, prelievi, uscite,
// entrate), its singular, or the English entity name.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "fatture", "fattura", "invoice", "invoices":
		return KindInvoice, nil
	case "prelievi", "prelievo", "withdrawal", "withdrawals":
		return KindWithdrawal, nil
	case "uscite", "uscita", "outflow", "outflows":
		return KindOutflow, nil
	case "entrate", "entrata", "inflow", "inflows":
		return KindInflow, nil
	}
	return "", fmt.Errorf("unknown ledger kind %q", s)
}

// Record is the storage shape shared by every kind. Fields a kind does not
// have (Client for movements, Category for invoices and withdrawals) stay empty.
type Record struct {
	Kind               Kind            `json:"kind"`
	ID                 string          `json:"id"`
	Date               Date            `json:"date"`
	Description        string          `json:"description"`
	Client             string          `json:"client,omitempty"`
	Category           string          `json:"category,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	Note               string          `json:"note,omitempty"`
	ExcludedFromCharts bool            `json:"excluded_from_charts,omitempty"`
}

// As returns a copy of the record moved to another kind, dropping the fields
// the target kind does not carry. The id is cleared.
func (r Record) As(kind Kind) Record {
	out := r
	out.Kind = kind
	out.ID = ""
	switch kind {
	case KindInvoice:
		out.Category = ""
		out.ExcludedFromCharts = false
	case KindWithdrawal:
		out.Client = ""
		out.Category = ""
		out.ExcludedFromCharts = false
	case KindOutflow, KindInflow:
		out.Client = ""
	}
	return out
}

// Add appends the record to the matching collection of the ledger.
func (l *Ledger) Add(r Record) {
	switch r.Kind {
	case KindInvoice:
		l.Invoices = append(l.Invoices, Invoice{
			ID: r.ID, Date: r.Date, Description: r.Description, Client: r.Client,
			GrossAmount: r.Amount, Note: r.Note,
		})
	case KindWithdrawal:
		l.Withdrawals = append(l.Withdrawals, Withdrawal{
			ID: r.ID, Date: r.Date, Description: r.Description, Amount: r.Amount, Note: r.Note,
		})
	case KindOutflow:
		l.Outflows = append(l.Outflows, Outflow{
			ID: r.ID, Date: r.Date, Description: r.Description, Category: r.Category,
			Amount: r.Amount, Note: r.Note, ExcludedFromCharts: r.ExcludedFromCharts,
		})
	case KindInflow:
		l.Inflows = append(l.Inflows, Inflow{
			ID: r.ID, Date: r.Date, Description: r.Description, Category: r.Category,
			Amount: r.Amount, Note: r.Note, ExcludedFromCharts: r.ExcludedFromCharts,
		})
	}
}
