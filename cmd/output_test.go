package cmd

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"forfettario/internal/reconciliation"
)

func init() {
	color.NoColor = true
}

func TestFormatEuro(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0,00 €"},
		{"7.5", "7,50 €"},
		{"999.999", "1.000,00 €"},
		{"1234.5", "1.234,50 €"},
		{"1234567.891", "1.234.567,89 €"},
		{"-2321.787", "-2.321,79 €"},
		{"-0.001", "0,00 €"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, formatEuro(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "23,2%", formatPercent(decimal.RequireFromString("23.21787")))
	assert.Equal(t, "0,0%", formatPercent(decimal.Zero))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Acme", truncate("Acme", 10))
	assert.Equal(t, "Società…", truncate("Società Rossi", 8))
}

func TestPrintReserveWarnsWhenShort(t *testing.T) {
	var buf bytes.Buffer
	printReserve(&buf, reconciliation.Reserve{
		Year:             2025,
		SafeNetAvailable: decimal.NewFromInt(-150),
	})

	out := buf.String()
	assert.Contains(t, out, "SALDO E ACCANTONAMENTO 2025")
	assert.Contains(t, out, "Primo acconto 2026")
	assert.Contains(t, out, "-150,00 €")
	assert.Contains(t, out, "Attenzione")
}

func TestYearLabel(t *testing.T) {
	assert.Equal(t, "tutti gli anni", yearLabel(0))
	assert.Equal(t, "2024", yearLabel(2024))
}
