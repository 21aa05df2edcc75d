package sheets

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"forfettario/internal/ledger"
	"forfettario/internal/logger"
	"forfettario/pkg/models"
)

// RangeReader reads a range of cell values, as Service.ReadRange does.
type RangeReader interface {
	ReadRange(ctx context.Context, rangeSpec string) ([][]interface{}, error)
}

// LedgerReader reads the ledger from the Fatture, Prelievi, Uscite and
// Entrate sheets of a spreadsheet. It implements services.SnapshotSource; the
// owner is the spreadsheet itself, so the owner argument is only logged.
type LedgerReader struct {
	reader RangeReader
	log    zerolog.Logger
}

// NewLedgerReader creates a ledger reader on top of a range reader
func NewLedgerReader(reader RangeReader) *LedgerReader {
	return &LedgerReader{
		reader: reader,
		log:    logger.WithComponent("sheets-reader"),
	}
}

// Snapshot reads all four ledger sheets. A missing or unreadable sheet fails
// the whole snapshot; rows that cannot be parsed are logged and skipped.
func (lr *LedgerReader) Snapshot(ctx context.Context, owner string) (models.Ledger, error) {
	var l models.Ledger
	for _, kind := range models.Kinds {
		records, err := lr.ReadKind(ctx, kind)
		if err != nil {
			return models.Ledger{}, err
		}
		for _, r := range records {
			l.Add(r)
		}
	}

	lr.log.Info().
		Str("owner", owner).
		Int("invoices", len(l.Invoices)).
		Int("withdrawals", len(l.Withdrawals)).
		Int("outflows", len(l.Outflows)).
		Int("inflows", len(l.Inflows)).
		Msg("Ledger read successfully")

	return l, nil
}

// ReadKind reads the sheet holding the records of one kind
func (lr *LedgerReader) ReadKind(ctx context.Context, kind models.Kind) ([]models.Record, error) {
	const op = "ReadKind"

	sheetName := ledger.SheetName(kind)
	lr.log.Debug().Str("sheet", sheetName).Msg("Reading ledger sheet")

	values, err := lr.reader.ReadRange(ctx, sheetName+"!A:F")
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read %s sheet: %w", op, sheetName, err)
	}

	records, rowErrors := ledger.ParseRows(kind, values)
	for _, rowErr := range rowErrors {
		lr.log.Warn().
			Err(rowErr.Err).
			Int("row", rowErr.Row).
			Str("sheet", sheetName).
			Msg("Failed to parse row, skipping")
	}

	lr.log.Debug().
		Int("total_rows", max(len(values)-1, 0)).
		Int("parsed_rows", len(records)).
		Str("sheet", sheetName).
		Msg("Ledger sheet read")

	return records, nil
}
