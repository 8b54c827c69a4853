// Package hindi has script detection and text normalization helpers for
// Devanagari content.
package hindi

import (
	"strings"
	"unicode"
)

// numerals maps Devanagari digit glyphs to their ASCII equivalents.
var numerals = map[rune]rune{
	'०': '0', '१': '1', '२': '2', '३': '3', '४': '4',
	'५': '5', '६': '6', '७': '7', '८': '8', '९': '9',
}

func isDevanagari(r rune) bool {
	return r >= 0x0900 && r <= 0x097F
}

// ContainsDevanagari reports whether text has at least one Devanagari rune.
func ContainsDevanagari(text string) bool {
	for _, r := range text {
		if isDevanagari(r) {
			return true
		}
	}
	return false
}

// ScriptFraction returns the fraction in [0,1] of Devanagari runes among the
// runes that carry script information (whitespace, punctuation and digits are
// ignored; symbols like emoji still count). An empty or all-ignored string
// yields 0.
func ScriptFraction(text string) float64 {
	var total, deva int
	for _, r := range text {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsDigit(r) {
			continue
		}
		total++
		if isDevanagari(r) {
			deva++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(deva) / float64(total)
}

// NormalizeNumerals rewrites Devanagari digits as ASCII digits. One-to-one
// substitution, order preserving, idempotent.
func NormalizeNumerals(text string) string {
	return strings.Map(func(r rune) rune {
		if a, ok := numerals[r]; ok {
			return a
		}
		return r
	}, text)
}

// CleanTopic trims the string and collapses runs of whitespace to single
// spaces.
func CleanTopic(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
