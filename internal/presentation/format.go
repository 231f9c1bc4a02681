// Package presentation renders list and dashboard state for a terminal in
// Brazilian Portuguese.
package presentation

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Currency formats an amount in reais, e.g. "R$ 1.234,50"
func Currency(v float64) string {
	return printer.Sprintf("R$ %.2f", v)
}

// Number formats a count with pt-BR grouping, e.g. "29.400"
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// Date formats a calendar date as dd/mm/yyyy
func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("02/01/2006")
}

// Period formats a date range
func Period(start, end time.Time) string {
	return Date(start) + " - " + Date(end)
}

// Semester formats an ordinal semester, e.g. "6º Semestre"
func Semester(n int) string {
	return printer.Sprintf("%dº Semestre", n)
}

// Initials returns up to two upper-case initials of a name
func Initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		out = append(out, unicode.ToUpper([]rune(part)[0]))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
