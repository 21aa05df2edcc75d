package fiscal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRates(t *testing.T) {
	rates := DefaultRates()

	assert.Equal(t, 2025, rates.Year)
	assertDecimal(t, "0.78", rates.ProfitabilityCoefficient)
	assertDecimal(t, "0.2607", rates.SocialContributionRate)
	assertDecimal(t, "0.05", rates.SubstituteTaxRate)
	assertDecimal(t, "0.40", rates.FirstAdvanceRate)
}

func TestParseRatesOverridesOnlyGivenFields(t *testing.T) {
	rates, err := ParseRates([]byte(`
year: 2026
substitute_tax_rate: "0.15"
`))
	require.NoError(t, err)

	assert.Equal(t, 2026, rates.Year)
	assertDecimal(t, "0.15", rates.SubstituteTaxRate)
	assertDecimal(t, "0.78", rates.ProfitabilityCoefficient)
}

func TestParseRatesRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not a number", `social_contribution_rate: "abc"`},
		{"above one", `profitability_coefficient: "1.2"`},
		{"negative", `substitute_tax_rate: "-0.05"`},
		{"negative year", `year: -1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRates([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidRates)
		})
	}
}

func TestParseRatesBadYAML(t *testing.T) {
	_, err := ParseRates([]byte("year: [unterminated"))
	assert.Error(t, err)
}

func TestLoadRates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regime.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`profitability_coefficient: "0.86"`), 0o644))

	rates, err := LoadRates(path)
	require.NoError(t, err)
	assertDecimal(t, "0.86", rates.ProfitabilityCoefficient)

	_, err = LoadRates(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
