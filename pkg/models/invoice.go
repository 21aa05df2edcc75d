package models

import (
	"github.com/shopspring/decimal"
)

// Date is a calendar date in ISO form (YYYY-MM-DD). Values are compared
// lexicographically, which only works because the format is zero padded and
// fixed width. Malformed dates are a caller contract violation.
type Date string

// Year returns the YYYY prefix of the date.
func (d Date) Year() string {
	if len(d) < 4 {
		return string(d)
	}
	return string(d[:4])
}

// YearMonth returns the YYYY-MM prefix of the date.
func (d Date) YearMonth() string {
	if len(d) < 7 {
		return string(d)
	}
	return string(d[:7])
}

// InYear reports whether the date falls in the given year. Year 0 matches everything.
func (d Date) InYear(year int) bool {
	if year == 0 {
		return true
	}
	return d.Year() == YearString(year)
}

// UpToYear reports whether the date falls in the given year or any earlier one.
func (d Date) UpToYear(year int) bool {
	if year == 0 {
		return true
	}
	return d.Year() <= YearString(year)
}

// Invoice is an issued invoice (fattura). Tax and net amounts are never stored,
// they are always recomputed from GrossAmount.
type Invoice struct {
	ID          string          `json:"id"`
	Date        Date            `json:"date"`
	Description string          `json:"description"`
	Client      string          `json:"client"`
	GrossAmount decimal.Decimal `json:"gross_amount"`
	Note        string          `json:"note,omitempty"`
}

// Withdrawal is a personal salary draw (prelievo) from the business account.
type Withdrawal struct {
	ID          string          `json:"id"`
	Date        Date            `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note,omitempty"`
}
