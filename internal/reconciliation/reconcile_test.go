package reconciliation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forfettario/internal/fiscal"
	"forfettario/pkg/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func mustReserve(t *testing.T, r *Reconciler, l models.Ledger, year int) Reserve {
	t.Helper()
	res, err := r.Reserve(l, year)
	require.NoError(t, err)
	return res
}

func newReconciler() *Reconciler {
	return NewReconciler(fiscal.NewEngine(fiscal.DefaultRates()), "")
}

func scenarioA() []models.Invoice {
	return []models.Invoice{
		{ID: "1", Date: "2025-01-10", Client: "Acme", GrossAmount: d("1000")},
		{ID: "2", Date: "2025-02-15", Client: "Beta", GrossAmount: d("2000")},
		{ID: "3", Date: "2025-03-20", Client: "Acme", GrossAmount: d("500")},
	}
}

func TestBankBalanceScenarioC(t *testing.T) {
	r := newReconciler()
	b := r.BankBalance(
		scenarioA(),
		[]models.Withdrawal{{Date: "2025-01-31", Amount: d("1000")}},
		[]models.Outflow{{Date: "2025-01-05", Category: "Software", Amount: d("500")}},
		nil,
	)

	assertDecimal(t, "2687.37455", b.NetFromInvoices, "net from invoices")
	assertDecimal(t, "1000", b.TotalWithdrawals, "withdrawals")
	assertDecimal(t, "500", b.TotalOutflows, "outflows")
	assertDecimal(t, "0", b.TotalInflows, "inflows")
	assertDecimal(t, "1187.37455", b.NetAvailable, "net available")
}

func TestBankBalanceCountsExcludedAndOpeningBalance(t *testing.T) {
	r := newReconciler()
	b := r.LedgerBalance(models.Ledger{
		Outflows: []models.Outflow{{Date: "2025-01-05", Amount: d("200"), ExcludedFromCharts: true}},
		Inflows: []models.Inflow{
			{Date: "2025-01-01", Category: models.OpeningBalanceCategory, Amount: d("1000")},
			{Date: "2025-01-02", Category: "Cashback", Amount: d("20"), ExcludedFromCharts: true},
		},
	})

	assertDecimal(t, "200", b.TotalOutflows, "outflows")
	assertDecimal(t, "1020", b.TotalInflows, "inflows")
	assertDecimal(t, "820", b.NetAvailable, "net available")
}

func TestReserveNoInvoicesScenarioE(t *testing.T) {
	r := newReconciler()
	l := models.Ledger{
		Outflows: []models.Outflow{
			{Date: "2024-06-30", Category: "tasse", Amount: d("300")},
			{Date: "2024-11-30", Category: "Tasse", Amount: d("200")},
		},
		Inflows: []models.Inflow{{Date: "2024-01-01", Category: "Saldo Iniziale", Amount: d("2000")}},
	}

	res := mustReserve(t, r, l, 2025)

	assertDecimal(t, "500", res.TaxesPaidPriorYear, "prior year taxes")
	assertDecimal(t, "0", res.TaxesAlreadyPaid, "taxes paid")
	assertDecimal(t, "0", res.TheoreticalTaxForYear, "theoretical")
	assertDecimal(t, "0", res.BalanceDueForYear, "balance due")
	assertDecimal(t, "0", res.FirstInstallmentNextYear, "first installment")
	assertDecimal(t, "0", res.TotalToReserve, "reserve")
	assertDecimal(t, "1500", res.Balance.NetAvailable, "net available")
	assert.True(t, res.SafeNetAvailable.Equal(res.Balance.NetAvailable))
}

func TestReserveFirstYearOfActivity(t *testing.T) {
	r := newReconciler()
	res := mustReserve(t, r, models.Ledger{Invoices: scenarioA()}, 2025)

	assertDecimal(t, "812.62545", res.TheoreticalTaxForYear, "theoretical")
	assertDecimal(t, "0", res.TaxesPaidPriorYear, "prior year taxes")
	assertDecimal(t, "812.62545", res.BalanceDueForYear, "balance due")
	assertDecimal(t, "325.05018", res.FirstInstallmentNextYear, "first installment")
	assertDecimal(t, "1137.67563", res.TotalToReserve, "reserve")
	assertDecimal(t, "2687.37455", res.Balance.NetAvailable, "net available")
	assertDecimal(t, "1549.69892", res.SafeNetAvailable, "safe")
}

func TestReserveWithPriorAdvances(t *testing.T) {
	r := newReconciler()
	l := models.Ledger{
		Invoices: append(scenarioA(), models.Invoice{ID: "0", Date: "2024-05-01", GrossAmount: d("1000")}),
		Outflows: []models.Outflow{
			{Date: "2024-11-30", Category: "TASSE", Amount: d("300")},
			{Date: "2025-06-30", Category: "Tasse", Amount: d("100")},
			{Date: "2026-06-30", Category: "Tasse", Amount: d("999")},
		},
		Withdrawals: []models.Withdrawal{
			{Date: "2025-03-01", Amount: d("500")},
			{Date: "2026-01-01", Amount: d("10000")},
		},
	}

	res := mustReserve(t, r, l, 2025)

	assertDecimal(t, "100", res.TaxesAlreadyPaid, "taxes paid")
	assertDecimal(t, "300", res.TaxesPaidPriorYear, "prior year taxes")
	assertDecimal(t, "512.62545", res.BalanceDueForYear, "balance due")
	assertDecimal(t, "837.67563", res.TotalToReserve, "reserve")

	// 2024 and 2025 invoices count, 2026 movements do not.
	assertDecimal(t, "3455.19585", res.Balance.NetFromInvoices, "net from invoices")
	assertDecimal(t, "500", res.Balance.TotalWithdrawals, "withdrawals")
	assertDecimal(t, "400", res.Balance.TotalOutflows, "outflows")
	assertDecimal(t, "2555.19585", res.Balance.NetAvailable, "net available")
	assertDecimal(t, "1717.52022", res.SafeNetAvailable, "safe")
}

func TestReserveBalanceDueNeverNegative(t *testing.T) {
	r := newReconciler()
	l := models.Ledger{
		Invoices: []models.Invoice{{Date: "2025-02-01", GrossAmount: d("1000")}},
		Outflows: []models.Outflow{{Date: "2024-06-30", Category: "Tasse", Amount: d("5000")}},
	}

	res := mustReserve(t, r, l, 2025)

	assertDecimal(t, "0", res.BalanceDueForYear, "balance due")
	assertDecimal(t, "92.87148", res.FirstInstallmentNextYear, "first installment")
	assertDecimal(t, "92.87148", res.TotalToReserve, "reserve")
}

func TestReserveRejectsNonPositiveYear(t *testing.T) {
	r := newReconciler()
	l := models.Ledger{
		Invoices: scenarioA(),
		Outflows: []models.Outflow{
			{Date: "2024-06-30", Category: "Tasse", Amount: d("300")},
			{Date: "2025-06-30", Category: "Tasse", Amount: d("100")},
		},
	}

	for _, year := range []int{0, -1} {
		res, err := r.Reserve(l, year)
		require.ErrorIs(t, err, ErrInvalidYear, "year %d", year)
		assert.True(t, res.TaxesAlreadyPaid.IsZero(), "year %d must not sum every year's taxes", year)
		assert.True(t, res.TotalToReserve.IsZero())
	}
}

func TestCustomTaxCategory(t *testing.T) {
	r := NewReconciler(fiscal.NewEngine(fiscal.DefaultRates()), "imposte")
	l := models.Ledger{
		Outflows: []models.Outflow{
			{Date: "2025-06-30", Category: "IMPOSTE", Amount: d("100")},
			{Date: "2025-06-30", Category: "Tasse", Amount: d("50")},
		},
	}

	assertDecimal(t, "100", mustReserve(t, r, l, 2025).TaxesAlreadyPaid, "taxes paid")
}

func TestUpToYear(t *testing.T) {
	l := models.Ledger{
		Invoices:    []models.Invoice{{Date: "2024-01-01"}, {Date: "2025-12-31"}, {Date: "2026-01-01"}},
		Withdrawals: []models.Withdrawal{{Date: "2026-02-01"}},
		Outflows:    []models.Outflow{{Date: "2023-02-01"}},
		Inflows:     []models.Inflow{{Date: "2025-02-01"}, {Date: "2027-02-01"}},
	}

	got := UpToYear(l, 2025)
	assert.Len(t, got.Invoices, 2)
	assert.Empty(t, got.Withdrawals)
	assert.Len(t, got.Outflows, 1)
	assert.Len(t, got.Inflows, 1)

	assert.Equal(t, l, UpToYear(l, 0))
}
