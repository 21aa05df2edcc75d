package ledger

import (
	"strings"
	"time"

	"forfettario/internal/category"
	"forfettario/pkg/models"
)

// Prepare validates a record about to be written and returns it normalized:
// kind aliases resolved, text fields trimmed, movement categories canonicalized.
func Prepare(r models.Record) (models.Record, error) {
	if err := Validate(r); err != nil {
		return models.Record{}, err
	}

	kind, _ := models.ParseKind(string(r.Kind))
	r.Kind = kind

	r.Description = strings.TrimSpace(r.Description)
	r.Client = strings.TrimSpace(r.Client)
	r.Note = strings.TrimSpace(r.Note)
	switch r.Kind {
	case models.KindOutflow, models.KindInflow:
		r.Category = category.Normalize(r.Category)
	default:
		r.Category = ""
	}
	return r, nil
}

// Validate checks the store preconditions: known kind, ISO date, positive amount.
func Validate(r models.Record) error {
	if _, err := models.ParseKind(string(r.Kind)); err != nil {
		return &ValidationError{Field: "kind", Value: r.Kind, Message: "unknown kind"}
	}
	if _, err := time.Parse("2006-01-02", string(r.Date)); err != nil {
		return &ValidationError{Field: "date", Value: r.Date, Message: "must be YYYY-MM-DD"}
	}
	if !r.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Value: r.Amount, Message: "must be greater than zero"}
	}
	return nil
}
