package simulation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forfettario/internal/fiscal"
	"forfettario/pkg/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixedClock() time.Time {
	return time.Date(2025, time.October, 3, 15, 4, 5, 0, time.UTC)
}

func TestExtraInvoice(t *testing.T) {
	sim := NewSimulator(fiscal.NewEngine(fiscal.DefaultRates()), WithClock(fixedClock))
	invoices := []models.Invoice{
		{ID: "1", Date: "2025-01-10", GrossAmount: d("1000")},
		{ID: "2", Date: "2025-02-15", GrossAmount: d("2000")},
	}

	s := sim.ExtraInvoice(invoices, d("500"))

	assert.True(t, d("3500").Equal(s.TotalInvoiced))
	assert.True(t, d("812.62545").Equal(s.TotalTax))
	assert.Len(t, invoices, 2, "input must not be mutated")
}

func TestWithExtraDoesNotAlias(t *testing.T) {
	sim := NewSimulator(fiscal.NewEngine(fiscal.DefaultRates()), WithClock(fixedClock))
	backing := make([]models.Invoice, 1, 4)
	backing[0] = models.Invoice{ID: "1", GrossAmount: d("10")}

	out := sim.WithExtra(backing, d("90"))
	require.Len(t, out, 2)
	assert.Equal(t, SyntheticInvoiceID, out[1].ID)
	assert.Equal(t, models.Date("2025-10-03"), out[1].Date)

	// appending to the input must not overwrite the synthetic invoice
	backing = append(backing, models.Invoice{ID: "other"})
	assert.Equal(t, SyntheticInvoiceID, out[1].ID)
	assert.Equal(t, "other", backing[1].ID)
}

func TestCompare(t *testing.T) {
	sim := NewSimulator(fiscal.NewEngine(fiscal.DefaultRates()), WithClock(fixedClock))

	c := sim.Compare(nil, d("1000"))

	assert.True(t, c.Current.TotalInvoiced.IsZero())
	assert.True(t, d("232.1787").Equal(c.ExtraTax), c.ExtraTax.String())
	assert.True(t, d("767.8213").Equal(c.ExtraNet), c.ExtraNet.String())
}

func TestDefaultClockIsNow(t *testing.T) {
	sim := NewSimulator(fiscal.NewEngine(fiscal.DefaultRates()))
	out := sim.WithExtra(nil, d("1"))

	require.Len(t, out, 1)
	assert.Equal(t, time.Now().Format("2006-01-02")[:4], out[0].Date.Year())
}
