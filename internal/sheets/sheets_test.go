package sheets

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forfettario/internal/fiscal"
	"forfettario/pkg/models"
)

type fakeSpreadsheet struct {
	ranges  map[string][][]interface{}
	written map[string][][]interface{}
	err     error
}

func (f *fakeSpreadsheet) ReadRange(ctx context.Context, rangeSpec string) ([][]interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ranges[rangeSpec], nil
}

func (f *fakeSpreadsheet) ReplaceSheet(ctx context.Context, sheetName string, values [][]interface{}) error {
	if f.err != nil {
		return f.err
	}
	if f.written == nil {
		f.written = make(map[string][][]interface{})
	}
	f.written[sheetName] = values
	return nil
}

func TestExtractSpreadsheetID(t *testing.T) {
	id, err := extractSpreadsheetID("https://docs.google.com/spreadsheets/d/1AbC-d_9/edit#gid=0")
	require.NoError(t, err)
	assert.Equal(t, "1AbC-d_9", id)

	_, err = extractSpreadsheetID("https://example.com/nope")
	assert.Error(t, err)
}

func TestLedgerReaderSnapshot(t *testing.T) {
	fake := &fakeSpreadsheet{ranges: map[string][][]interface{}{
		"Fatture!A:F": {
			{"Data", "Descrizione", "Cliente", "Importo", "Note"},
			{"15/01/2025", "Consulenza", "Acme", "10.000,00"},
			{"bad", "Consulenza", "Acme", "1"},
		},
		"Prelievi!A:F": {
			{"Data", "Descrizione", "Importo", "Note"},
			{"01/02/2025", "Prelievo", "3.000,00"},
		},
		"Uscite!A:F": {
			{"Data", "Descrizione", "Categoria", "Importo", "Note", "Escluso"},
			{"10/02/2025", "Abbonamento", "software", "500"},
			{"01/01/2025", "Apertura", "Saldo iniziale", "100", "", "x"},
		},
		"Entrate!A:F": {
			{"Data", "Descrizione", "Categoria", "Importo", "Note", "Escluso"},
			{"01/03/2025", "Rimborso", "rimborso", "200,00"},
		},
	}}

	l, err := NewLedgerReader(fake).Snapshot(context.Background(), "mario")
	require.NoError(t, err)

	require.Len(t, l.Invoices, 1)
	assert.Equal(t, "Acme", l.Invoices[0].Client)
	assert.True(t, decimal.NewFromInt(10000).Equal(l.Invoices[0].GrossAmount))

	require.Len(t, l.Withdrawals, 1)
	require.Len(t, l.Outflows, 2)
	assert.Equal(t, "Software", l.Outflows[0].Category)
	assert.Equal(t, models.OpeningBalanceCategory, l.Outflows[1].Category)
	assert.True(t, l.Outflows[1].ExcludedFromCharts)

	require.Len(t, l.Inflows, 1)
	assert.Equal(t, "Rimborsi", l.Inflows[0].Category)
}

func TestLedgerReaderFailsOnReadError(t *testing.T) {
	boom := errors.New("quota exceeded")
	_, err := NewLedgerReader(&fakeSpreadsheet{err: boom}).Snapshot(context.Background(), "mario")
	assert.ErrorIs(t, err, boom)
}

func TestReportRows(t *testing.T) {
	engine := fiscal.NewEngine(fiscal.DefaultRates())
	invoices := []models.Invoice{
		{ID: "1", Date: "2025-01-15", GrossAmount: decimal.NewFromInt(10000)},
	}
	summary := engine.AnnualSummary(invoices)

	r := Report{
		Year:       2025,
		Summary:    summary,
		TaxBurden:  summary.TaxBurdenPercentage(),
		Breakdowns: engine.PerInvoiceBreakdown(invoices),
	}

	fake := &fakeSpreadsheet{}
	require.NoError(t, WriteReport(context.Background(), fake, "Riepilogo", r))

	rows := fake.written["Riepilogo"]
	require.Len(t, rows, 12)
	assert.Equal(t, []interface{}{"1", 10000.0, 2321.79, 7678.21}, rows[1])
	assert.Empty(t, rows[2])
	assert.Equal(t, []interface{}{"Anno", "2025"}, rows[3])
	assert.Equal(t, []interface{}{"Netto da fatture", 7678.21}, rows[10])
	assert.Equal(t, []interface{}{"Pressione fiscale %", 23.22}, rows[11])
}

func TestWriteReportWrapsError(t *testing.T) {
	boom := errors.New("forbidden")
	err := WriteReport(context.Background(), &fakeSpreadsheet{err: boom}, "Riepilogo", Report{})
	assert.ErrorIs(t, err, boom)
}
