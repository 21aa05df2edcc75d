// Package simulation answers "what if I issue one more invoice" questions
// without touching stored data.
package simulation

import (
	"time"

	"github.com/shopspring/decimal"

	"forfettario/internal/fiscal"
	"forfettario/pkg/models"
)

// SyntheticInvoiceID identifies the invoice added by a simulation.
const SyntheticInvoiceID = "simulated"

// Simulator evaluates hypothetical invoices with a fiscal engine.
type Simulator struct {
	engine *fiscal.Engine
	now    func() time.Time
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithClock overrides the clock used to date the synthetic invoice.
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) {
		s.now = now
	}
}

// NewSimulator creates a simulator dating synthetic invoices with time.Now
// unless WithClock is given.
func NewSimulator(engine *fiscal.Engine, opts ...Option) *Simulator {
	s := &Simulator{engine: engine, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExtraInvoice returns the annual summary of invoices plus one synthetic
// invoice of gross amount extra dated today. invoices is not modified.
func (s *Simulator) ExtraInvoice(invoices []models.Invoice, extra decimal.Decimal) fiscal.Summary {
	return s.engine.AnnualSummary(s.WithExtra(invoices, extra))
}

// WithExtra returns a copy of invoices with the synthetic invoice appended.
func (s *Simulator) WithExtra(invoices []models.Invoice, extra decimal.Decimal) []models.Invoice {
	out := make([]models.Invoice, len(invoices), len(invoices)+1)
	copy(out, invoices)
	return append(out, models.Invoice{
		ID:          SyntheticInvoiceID,
		Date:        models.Date(s.now().Format("2006-01-02")),
		Description: "Fattura simulata",
		GrossAmount: extra,
	})
}

// Comparison shows a simulated summary next to the current one.
type Comparison struct {
	Current   fiscal.Summary  `json:"current"`
	Simulated fiscal.Summary  `json:"simulated"`
	ExtraTax  decimal.Decimal `json:"extra_tax"`
	ExtraNet  decimal.Decimal `json:"extra_net"`
}

// Compare evaluates the extra invoice and the difference it makes.
func (s *Simulator) Compare(invoices []models.Invoice, extra decimal.Decimal) Comparison {
	current := s.engine.AnnualSummary(invoices)
	simulated := s.ExtraInvoice(invoices, extra)
	return Comparison{
		Current:   current,
		Simulated: simulated,
		ExtraTax:  simulated.TotalTax.Sub(current.TotalTax),
		ExtraNet:  simulated.NetFromInvoices.Sub(current.NetFromInvoices),
	}
}
