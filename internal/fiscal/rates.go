package fiscal

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed regime.yaml
var embeddedRegime []byte

// ErrInvalidRates is returned when a regime file or override holds rates
// outside the [0, 1] range or values that are not decimal numbers.
var ErrInvalidRates = errors.New("invalid regime rates")

// Rates holds the constants of one fiscal year of the flat-rate scheme.
type Rates struct {
	// Year is the fiscal year the rates apply to.
	Year int
	// ProfitabilityCoefficient is the share of gross revenue treated as taxable.
	ProfitabilityCoefficient decimal.Decimal
	// SocialContributionRate is the Gestione Separata INPS rate.
	SocialContributionRate decimal.Decimal
	// SubstituteTaxRate is the imposta sostitutiva rate.
	SubstituteTaxRate decimal.Decimal
	// FirstAdvanceRate is the share of the year's tax due as first advance
	// installment the following June.
	FirstAdvanceRate decimal.Decimal
}

// regimeFile is the YAML shape of a regime file. Rates are strings so they are
// parsed as exact decimals.
type regimeFile struct {
	Year                     int    `yaml:"year"`
	ProfitabilityCoefficient string `yaml:"profitability_coefficient"`
	SocialContributionRate   string `yaml:"social_contribution_rate"`
	SubstituteTaxRate        string `yaml:"substitute_tax_rate"`
	FirstAdvanceRate         string `yaml:"first_advance_rate"`
}

// DefaultRates returns the embedded 2025 rates.
func DefaultRates() Rates {
	rates, err := ParseRates(embeddedRegime)
	if err != nil {
		panic(fmt.Sprintf("embedded regime.yaml is invalid: %v", err))
	}
	return rates
}

// ParseRates parses a regime YAML document. Missing fields keep the value they
// have in the embedded defaults.
func ParseRates(data []byte) (Rates, error) {
	const op = "ParseRates"

	var base regimeFile
	if err := yaml.Unmarshal(embeddedRegime, &base); err != nil {
		return Rates{}, fmt.Errorf("%s: embedded regime: %w", op, err)
	}

	file := base
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Rates{}, fmt.Errorf("%s: failed to parse YAML: %w", op, err)
	}

	var rates Rates
	rates.Year = file.Year

	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"profitability_coefficient", file.ProfitabilityCoefficient, &rates.ProfitabilityCoefficient},
		{"social_contribution_rate", file.SocialContributionRate, &rates.SocialContributionRate},
		{"substitute_tax_rate", file.SubstituteTaxRate, &rates.SubstituteTaxRate},
		{"first_advance_rate", file.FirstAdvanceRate, &rates.FirstAdvanceRate},
	}
	for _, f := range fields {
		value, err := decimal.NewFromString(f.raw)
		if err != nil {
			return Rates{}, fmt.Errorf("%s: %s %q: %w", op, f.name, f.raw, ErrInvalidRates)
		}
		*f.dst = value
	}

	if err := rates.Validate(); err != nil {
		return Rates{}, fmt.Errorf("%s: %w", op, err)
	}
	return rates, nil
}

// LoadRates reads a regime YAML file from disk.
func LoadRates(path string) (Rates, error) {
	const op = "LoadRates"

	data, err := os.ReadFile(path)
	if err != nil {
		return Rates{}, fmt.Errorf("%s: failed to read regime file %s: %w", op, path, err)
	}
	return ParseRates(data)
}

// Validate checks that every rate is a fraction in [0, 1].
func (r Rates) Validate() error {
	one := decimal.NewFromInt(1)
	check := map[string]decimal.Decimal{
		"profitability_coefficient": r.ProfitabilityCoefficient,
		"social_contribution_rate":  r.SocialContributionRate,
		"substitute_tax_rate":       r.SubstituteTaxRate,
		"first_advance_rate":        r.FirstAdvanceRate,
	}
	for name, value := range check {
		if value.IsNegative() || value.GreaterThan(one) {
			return fmt.Errorf("%s = %s is outside [0, 1]: %w", name, value, ErrInvalidRates)
		}
	}
	if r.Year < 0 {
		return fmt.Errorf("year %d is negative: %w", r.Year, ErrInvalidRates)
	}
	return nil
}
