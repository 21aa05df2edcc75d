package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"forfettario/internal/category"
	"forfettario/internal/fiscal"
	"forfettario/internal/logger"
)

// Ledger sources
const (
	SourceSQLite = "sqlite"
	SourceSheets = "sheets"
)

type Config struct {
	// Ledger Configuration
	Owner        string
	LedgerSource string
	LedgerDB     string

	// Google Sheets Configuration
	GoogleSheetURL string
	ReportSheet    string

	// Fiscal Configuration
	FiscalYear  int
	TaxCategory string
	RegimeFile  string

	// Rate overrides, empty when unset
	ProfitabilityCoefficient string
	SocialContributionRate   string
	SubstituteTaxRate        string
	FirstAdvanceRate         string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		Owner:                    getEnv("FORFETTARIO_OWNER", "default"),
		LedgerSource:             strings.ToLower(getEnv("LEDGER_SOURCE", SourceSQLite)),
		LedgerDB:                 getEnv("LEDGER_DB", "forfettario.db"),
		GoogleSheetURL:           getEnv("GOOGLE_SHEET_URL", ""),
		ReportSheet:              getEnv("REPORT_SHEET", "Riepilogo"),
		TaxCategory:              getEnv("TAX_CATEGORY", category.Taxes),
		RegimeFile:               getEnv("REGIME_FILE", ""),
		ProfitabilityCoefficient: getEnv("PROFITABILITY_COEFFICIENT", ""),
		SocialContributionRate:   getEnv("SOCIAL_CONTRIBUTION_RATE", ""),
		SubstituteTaxRate:        getEnv("SUBSTITUTE_TAX_RATE", ""),
		FirstAdvanceRate:         getEnv("FIRST_ADVANCE_RATE", ""),
		LogLevel:                 getEnv("LOG_LEVEL", "warn"),
		LogFormat:                getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:            getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:                getEnv("LOG_OUTPUT", "stderr"),
	}

	if raw := getEnv("FISCAL_YEAR", ""); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("config validation failed: FISCAL_YEAR %q is not a year", raw)
		}
		config.FiscalYear = year
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.LedgerSource {
	case SourceSQLite:
		if c.LedgerDB == "" {
			return fmt.Errorf("LEDGER_DB is required for the sqlite source")
		}
	case SourceSheets:
		if c.GoogleSheetURL == "" {
			return fmt.Errorf("GOOGLE_SHEET_URL is required for the sheets source")
		}
	default:
		return fmt.Errorf("LEDGER_SOURCE must be %q or %q, got %q", SourceSQLite, SourceSheets, c.LedgerSource)
	}
	if c.Owner == "" {
		return fmt.Errorf("FORFETTARIO_OWNER must not be empty")
	}
	if c.FiscalYear < 0 {
		return fmt.Errorf("FISCAL_YEAR must not be negative")
	}
	return nil
}

// ApplyOverrides replaces source, owner and database path with the non-empty
// arguments, typically command-line flags, and validates the result.
func (c *Config) ApplyOverrides(source, owner, db string) error {
	if source != "" {
		c.LedgerSource = strings.ToLower(source)
	}
	if owner != "" {
		c.Owner = owner
	}
	if db != "" {
		c.LedgerDB = db
	}
	if err := c.validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Rates returns the regime rates: the embedded defaults or REGIME_FILE, with
// the single-rate env overrides applied on top.
func (c *Config) Rates() (fiscal.Rates, error) {
	rates := fiscal.DefaultRates()
	if c.RegimeFile != "" {
		loaded, err := fiscal.LoadRates(c.RegimeFile)
		if err != nil {
			return fiscal.Rates{}, err
		}
		rates = loaded
	}

	overrides := []struct {
		env string
		raw string
		dst *decimal.Decimal
	}{
		{"PROFITABILITY_COEFFICIENT", c.ProfitabilityCoefficient, &rates.ProfitabilityCoefficient},
		{"SOCIAL_CONTRIBUTION_RATE", c.SocialContributionRate, &rates.SocialContributionRate},
		{"SUBSTITUTE_TAX_RATE", c.SubstituteTaxRate, &rates.SubstituteTaxRate},
		{"FIRST_ADVANCE_RATE", c.FirstAdvanceRate, &rates.FirstAdvanceRate},
	}
	for _, o := range overrides {
		if o.raw == "" {
			continue
		}
		value, err := decimal.NewFromString(o.raw)
		if err != nil {
			return fiscal.Rates{}, fmt.Errorf("%s %q: %w", o.env, o.raw, fiscal.ErrInvalidRates)
		}
		*o.dst = value
	}

	if err := rates.Validate(); err != nil {
		return fiscal.Rates{}, err
	}
	return rates, nil
}

// ReferenceYear is FISCAL_YEAR, or the year of the regime rates when unset.
func (c *Config) ReferenceYear(rates fiscal.Rates) int {
	if c.FiscalYear != 0 {
		return c.FiscalYear
	}
	return rates.Year
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
