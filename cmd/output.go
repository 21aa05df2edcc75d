package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

var (
	titleColor = color.New(color.FgGreen, color.Bold)
	labelColor = color.New(color.FgCyan)
	negColor   = color.New(color.FgRed)
	posColor   = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow, color.Bold)
)

// header prints a boxed section title
func header(w io.Writer, title string) {
	line := strings.Repeat("=", 60)
	titleColor.Fprintln(w, line)
	titleColor.Fprintf(w, "%s\n", center(title, 60))
	titleColor.Fprintln(w, line)
}

// amountLine prints "label: amount", the amount in red when negative
func amountLine(w io.Writer, label string, amount decimal.Decimal) {
	labelColor.Fprintf(w, "%-32s", label+":")
	fmt.Fprintln(w, colorAmount(amount))
}

// colorAmount formats amount in euro, red when negative
func colorAmount(amount decimal.Decimal) string {
	text := fmt.Sprintf("%14s", formatEuro(amount))
	if amount.IsNegative() {
		return negColor.Sprint(text)
	}
	return text
}

// formatEuro formats an amount the Italian way: 1.234,56 €
func formatEuro(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}

	sign := ""
	if amount.Round(2).IsNegative() {
		sign = "-"
	}
	return sign + grouped.String() + "," + fracPart + " €"
}

// formatPercent formats a percentage with one decimal: 23,2%
func formatPercent(p decimal.Decimal) string {
	return strings.Replace(p.StringFixed(1), ".", ",", 1) + "%"
}

func yearLabel(year int) string {
	if year == 0 {
		return "tutti gli anni"
	}
	return fmt.Sprintf("%d", year)
}

func writeJSON(w io.Writer, v interface{}) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}

// center centers text within a given width
func center(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
