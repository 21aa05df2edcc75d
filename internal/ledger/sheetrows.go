package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"forfettario/pkg/models"
)

// Column layout of the ledger sheets, one sheet per kind, header in row 1:
//
//	Fatture:         A=Data B=Descrizione C=Cliente   D=Importo E=Note
//	Prelievi:        A=Data B=Descrizione C=Importo   D=Note
//	Uscite/Entrate:  A=Data B=Descrizione C=Categoria D=Importo E=Note F=Escluso
type columns struct {
	client, category, amount, note, excluded int
	width                                    int
}

var layouts = map[models.Kind]columns{
	models.KindInvoice:    {client: 2, category: -1, amount: 3, note: 4, excluded: -1, width: 4},
	models.KindWithdrawal: {client: -1, category: -1, amount: 2, note: 3, excluded: -1, width: 3},
	models.KindOutflow:    {client: -1, category: 2, amount: 3, note: 4, excluded: 5, width: 4},
	models.KindInflow:     {client: -1, category: 2, amount: 3, note: 4, excluded: 5, width: 4},
}

// SheetName returns the sheet holding the records of kind.
func SheetName(kind models.Kind) string {
	switch kind {
	case models.KindInvoice:
		return "Fatture"
	case models.KindWithdrawal:
		return "Prelievi"
	case models.KindOutflow:
		return "Uscite"
	case models.KindInflow:
		return "Entrate"
	}
	return string(kind)
}

// RowError is a sheet row that could not be parsed.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// ParseRows converts the values of a ledger sheet (header row included) into
// records. Rows that cannot be parsed are returned as RowErrors and skipped;
// blank rows are ignored. Record ids are "<kind>-<row number>".
func ParseRows(kind models.Kind, values [][]interface{}) ([]models.Record, []RowError) {
	layout, ok := layouts[kind]
	if !ok {
		return nil, []RowError{{Row: 0, Err: fmt.Errorf("unknown ledger kind %q", kind)}}
	}
	if len(values) <= 1 {
		return nil, nil
	}

	var records []models.Record
	var rowErrors []RowError
	for i, row := range values[1:] {
		rowNum := i + 2 // header and 1-based rows

		if isBlank(row) {
			continue
		}
		if len(row) < layout.width {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Err: fmt.Errorf("expected at least %d columns, got %d", layout.width, len(row))})
			continue
		}

		record, err := parseRow(kind, layout, row)
		if err != nil {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Err: err})
			continue
		}
		record.ID = fmt.Sprintf("%s-%d", kind, rowNum)

		prepared, err := Prepare(record)
		if err != nil {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Err: err})
			continue
		}
		records = append(records, prepared)
	}
	return records, rowErrors
}

func parseRow(kind models.Kind, layout columns, row []interface{}) (models.Record, error) {
	dateStr := getString(row, 0)
	date, err := ParseDate(dateStr)
	if err != nil {
		return models.Record{}, fmt.Errorf("invalid date '%s': %w", dateStr, err)
	}

	amountStr := getString(row, layout.amount)
	amount, err := ParseAmount(amountStr)
	if err != nil {
		return models.Record{}, fmt.Errorf("invalid amount '%s': %w", amountStr, err)
	}

	return models.Record{
		Kind:               kind,
		Date:               date,
		Description:        getString(row, 1),
		Client:             getString(row, layout.client),
		Category:           getString(row, layout.category),
		Amount:             amount.Abs(),
		Note:               getString(row, layout.note),
		ExcludedFromCharts: parseBool(getString(row, layout.excluded)),
	}, nil
}

// ParseDate parses the date formats found in Italian spreadsheets
// (DD/MM/YYYY, DD.MM.YYYY, DD-MM-YYYY) and ISO dates, returning an ISO date.
func ParseDate(dateStr string) (models.Date, error) {
	cleaned := strings.TrimSpace(dateStr)
	if cleaned == "" {
		return "", fmt.Errorf("empty date string")
	}

	formats := []string{
		"2006-01-02",
		"02/01/2006",
		"2/1/2006",
		"02.01.2006",
		"2.1.2006",
		"02-01-2006",
		"02/01/06",
	}
	for _, format := range formats {
		if date, err := time.Parse(format, cleaned); err == nil {
			return models.Date(date.Format("2006-01-02")), nil
		}
	}
	return "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseAmount parses an amount written the Italian way: dot as thousands
// separator, comma as decimal separator, optional euro sign. Plain numbers
// with a dot decimal ("1234.56") are accepted too.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(amountStr)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	negative := strings.HasPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "-")

	replacer := strings.NewReplacer(" ", "", "\u00a0", "", "€", "", "EUR", "")
	cleaned = replacer.Replace(cleaned)

	switch {
	case strings.Contains(cleaned, ",") && strings.Contains(cleaned, "."):
		// 1.234,56
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case strings.Contains(cleaned, ","):
		// 1234,56
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case strings.Count(cleaned, ".") > 1:
		// 1.234.567
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unable to parse amount: %s (cleaned: %s)", amountStr, cleaned)
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "vero", "si", "sì", "x", "1", "yes":
		return true
	}
	return false
}

func isBlank(row []interface{}) bool {
	for i := range row {
		if getString(row, i) != "" {
			return false
		}
	}
	return true
}

// getString safely extracts a string value from a row slice
func getString(row []interface{}, index int) string {
	if index < 0 || index >= len(row) || row[index] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", row[index]))
}
