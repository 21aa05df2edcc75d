package kpi

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"forfettario/pkg/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func ledger() models.Ledger {
	return models.Ledger{
		Invoices: []models.Invoice{
			{Date: "2025-01-10", Client: "Acme", GrossAmount: d("1000")},
			{Date: "2025-01-20", Client: "Beta", GrossAmount: d("2000")},
			{Date: "2025-03-20", Client: "Acme", GrossAmount: d("500")},
			{Date: "2024-07-01", Client: "Gamma", GrossAmount: d("9000")},
		},
		Outflows: []models.Outflow{
			{Date: "2025-01-05", Category: "Software", Amount: d("100")},
			{Date: "2025-02-05", Category: "Viaggi", Amount: d("700"), ExcludedFromCharts: true},
			{Date: "2024-02-05", Category: "Software", Amount: d("50")},
		},
		Inflows: []models.Inflow{
			{Date: "2025-01-01", Category: "Saldo Iniziale", Amount: d("10000")},
			{Date: "2025-06-30", Category: "Interessi", Amount: d("12.5")},
			{Date: "2025-07-30", Category: "Cashback", Amount: d("3"), ExcludedFromCharts: true},
		},
		Withdrawals: []models.Withdrawal{
			{Date: "2025-01-31", Amount: d("1000")},
			{Date: "2024-12-31", Amount: d("400")},
		},
	}
}

func TestComputeForYear(t *testing.T) {
	k := FromLedger(ledger(), 2025)

	assert.Equal(t, 2025, k.Year)
	assertDecimal(t, "3512.5", k.TotalIncome, "income")
	assertDecimal(t, "1100", k.TotalExpense, "expense")
	assertDecimal(t, "2412.5", k.NetBalance, "net balance")
	assertDecimal(t, "1750", k.AverageMonthlyInvoiced, "average")
	assert.Equal(t, "Beta", k.BestClient.Name)
	assertDecimal(t, "2000", k.BestClient.Amount, "best client")
	assert.Equal(t, 3, k.InvoiceCount)
	assert.Equal(t, 2, k.ClientCount)
}

func TestComputeAllYears(t *testing.T) {
	k := FromLedger(ledger(), 0)

	assertDecimal(t, "12512.5", k.TotalIncome, "income")
	assertDecimal(t, "1550", k.TotalExpense, "expense")
	assert.InDelta(t, 4166.6666667, k.AverageMonthlyInvoiced.InexactFloat64(), 1e-6)
	assert.Equal(t, "Gamma", k.BestClient.Name)
	assert.Equal(t, 4, k.InvoiceCount)
	assert.Equal(t, 3, k.ClientCount)
}

func TestComputeEmpty(t *testing.T) {
	k := Compute(nil, nil, nil, nil, 2025)

	assert.True(t, k.TotalIncome.IsZero())
	assert.True(t, k.AverageMonthlyInvoiced.IsZero())
	assert.Equal(t, BestClient{Name: NoClient, Amount: decimal.Zero}, k.BestClient)
	assert.Zero(t, k.InvoiceCount)
	assert.Zero(t, k.ClientCount)
}

func TestExcludedInflowNeverCounted(t *testing.T) {
	l := models.Ledger{Inflows: []models.Inflow{
		{Date: "2025-01-01", Category: "saldo iniziale", Amount: d("100")},
		{Date: "2025-01-01", Category: "Rimborsi", Amount: d("100"), ExcludedFromCharts: true},
	}}

	k := FromLedger(l, 0)
	assert.True(t, k.TotalIncome.IsZero(), "income %s", k.TotalIncome)
}
