package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", "Altro"},
		{"blank", "   ", "Altro"},
		{"padded", " tasse ", "Tasse"},
		{"already canonical", "Tasse", "Tasse"},
		{"upper", "BANCA", "Banca"},
		{"mixed", "aBbOnAmEnTi", "Abbonamenti"},
		{"synonym after casing", "FATTURA", "Fatture"},
		{"rimborso", "rimborso", "Rimborsi"},
		{"stipendio", "Stipendio", "Stipendi"},
		{"interesse", " interesse", "Interessi"},
		{"plural untouched", "Interessi", "Interessi"},
		{"multi word is single-word cased", "spese BANCARIE", "Spese bancarie"},
		{"opening balance kept", "Saldo Iniziale", "Saldo Iniziale"},
		{"opening balance lower", "saldo iniziale", "Saldo Iniziale"},
		{"accented", "ÈNERGIA", "Ènergia"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"", " ", "tasse", "TASSE", "Fattura", "fatture", "rimborso", "STIPENDIO",
		"interesse", "saldo INIZIALE", "Cashback", "  spese   varie ", "ùltimo", "x",
		"ßa", "SSa", "ﬁle", "FIle", "ŉabc", "ʼNabc", "ǆemal", "ΣΑΣ", "İstanbul", "\xffabc",
	}
	for raw := range synonyms {
		inputs = append(inputs, raw)
	}

	for _, raw := range inputs {
		once := Normalize(raw)
		assert.Equal(t, once, Normalize(once), "Normalize(%q) is not idempotent", raw)
	}
}

func TestNormalizeKeepsHeadAsOneRune(t *testing.T) {
	assert.Equal(t, "ßa", Normalize("ßa"))
	assert.Equal(t, "ﬁle", Normalize("ﬁle"))
	assert.Equal(t, "ǅemal", Normalize("ǆEMAL"))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("fattura", "FATTURE"))
	assert.True(t, Equal("", "altro"))
	assert.False(t, Equal("Tasse", "Tassa"))
}
