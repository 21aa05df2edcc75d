package cashflow

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forfettario/pkg/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "want %s, got %s", want, got)
}

func TestByCategory(t *testing.T) {
	items := FromOutflows([]models.Outflow{
		{Date: "2025-01-05", Category: "tasse", Amount: d("300")},
		{Date: "2025-02-05", Category: "TASSE ", Amount: d("100")},
		{Date: "2025-02-06", Category: "Software", Amount: d("100")},
		{Date: "2025-02-07", Category: "", Amount: d("50")},
		{Date: "2025-02-08", Category: "Viaggi", Amount: d("999"), ExcludedFromCharts: true},
		{Date: "2025-01-01", Category: "Saldo Iniziale", Amount: d("5000")},
	})

	rows := ByCategory(items)
	require.Len(t, rows, 3)

	assert.Equal(t, "Tasse", rows[0].Category)
	assertDecimal(t, "400", rows[0].Total)
	assertDecimal(t, "72.72727272727273", rows[0].PercentageOfGroup.Round(14))

	assert.Equal(t, "Software", rows[1].Category)
	assertDecimal(t, "100", rows[1].Total)

	assert.Equal(t, "Altro", rows[2].Category)
	assertDecimal(t, "50", rows[2].Total)

	sum := decimal.Zero
	for _, r := range rows {
		sum = sum.Add(r.PercentageOfGroup)
	}
	assert.InDelta(t, 100.0, sum.InexactFloat64(), 1e-9)
}

func TestByCategoryEmpty(t *testing.T) {
	assert.Empty(t, ByCategory(nil))
	assert.Empty(t, ByCategory(FromInflows([]models.Inflow{
		{Category: "Saldo Iniziale", Amount: d("10")},
		{Category: "Interessi", Amount: d("10"), ExcludedFromCharts: true},
	})))
}

func TestByCategoryZeroAmountsGuardPercentage(t *testing.T) {
	rows := ByCategory(FromInflows([]models.Inflow{{Category: "Interessi", Amount: decimal.Zero}}))
	require.Len(t, rows, 1)
	assert.True(t, rows[0].PercentageOfGroup.IsZero())
}

func TestInvoicesByMonth(t *testing.T) {
	invoices := []models.Invoice{
		{Date: "2025-11-02", GrossAmount: d("100")},
		{Date: "2025-02-10", GrossAmount: d("200")},
		{Date: "2024-12-31", GrossAmount: d("50")},
		{Date: "2025-02-28", GrossAmount: d("300")},
		{Date: "2025-04-01", GrossAmount: d("10")},
	}

	all := InvoicesByMonth(invoices, 0)
	require.Len(t, all, 4)
	assert.Equal(t, MonthTotal{MonthLabel: "Dic", Month: 12, Year: 2024, Total: all[0].Total}, all[0])
	assert.Equal(t, "Feb", all[1].MonthLabel)
	assertDecimal(t, "500", all[1].Total)
	assert.Equal(t, "Apr", all[2].MonthLabel)
	assert.Equal(t, "Nov", all[3].MonthLabel)

	only2025 := InvoicesByMonth(invoices, 2025)
	require.Len(t, only2025, 3)
	for _, row := range only2025 {
		assert.Equal(t, 2025, row.Year)
	}

	assert.Empty(t, InvoicesByMonth(nil, 2025))
}

func TestRankClients(t *testing.T) {
	invoices := []models.Invoice{
		{Client: "Acme", GrossAmount: d("1000")},
		{Client: "Beta", GrossAmount: d("2000")},
		{Client: "Acme", GrossAmount: d("500")},
		{Client: "Gamma", GrossAmount: d("500")},
	}

	rows := RankClients(invoices, 2)
	require.Len(t, rows, 2)

	assert.Equal(t, "Beta", rows[0].Client)
	assertDecimal(t, "2000", rows[0].Total)
	assert.Equal(t, 1, rows[0].Count)
	assertDecimal(t, "50", rows[0].PercentageOfGroup)

	assert.Equal(t, "Acme", rows[1].Client)
	assertDecimal(t, "1500", rows[1].Total)
	assert.Equal(t, 2, rows[1].Count)
	assertDecimal(t, "37.5", rows[1].PercentageOfGroup)

	assert.Len(t, RankClients(invoices, 0), 3)
	assert.Empty(t, RankClients(nil, 5))
}

func TestCumulativeBalance(t *testing.T) {
	invoices := []models.Invoice{
		{Date: "2025-01-10", GrossAmount: d("1000")},
		{Date: "2025-03-01", GrossAmount: d("500")},
	}
	outflows := []models.Outflow{
		{Date: "2025-01-05", Category: "Software", Amount: d("100")},
		{Date: "2025-01-06", Category: "Viaggi", Amount: d("999"), ExcludedFromCharts: true},
	}
	inflows := []models.Inflow{
		{Date: "2025-01-01", Category: "Saldo Iniziale", Amount: d("10000")},
		{Date: "2025-01-10", Category: "Interessi", Amount: d("5")},
		{Date: "2024-12-31", Category: "Interessi", Amount: d("7")},
	}
	withdrawals := []models.Withdrawal{
		{Date: "2025-02-01", Amount: d("300")},
	}

	points := CumulativeBalance(invoices, outflows, inflows, withdrawals, 2025)
	require.Len(t, points, 5)

	want := []struct {
		date    models.Date
		balance string
	}{
		{"2025-01-05", "-100"},
		{"2025-01-10", "900"},
		{"2025-01-10", "905"},
		{"2025-02-01", "605"},
		{"2025-03-01", "1105"},
	}
	for i, w := range want {
		assert.Equal(t, w.date, points[i].Date)
		assertDecimal(t, w.balance, points[i].RunningBalance)
	}

	all := CumulativeBalance(invoices, outflows, inflows, withdrawals, 0)
	require.Len(t, all, 6)
	assert.Equal(t, models.Date("2024-12-31"), all[0].Date)
	assertDecimal(t, "1112", all[len(all)-1].RunningBalance)
}
