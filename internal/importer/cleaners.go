// Package importer parses the semicolon-delimited debt schedule export into
// normalized payment records. The source uses Brazilian locale conventions:
// comma decimal separator, dot thousands separator, DD/MM/YYYY dates.
package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	installmentPattern = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)
	nonNumericPattern  = regexp.MustCompile(`[^0-9,.\-]`)
)

// ParseBRLNumber converts a locale-formatted currency string to a float.
// "R$ 1.234,56" -> 1234.56. Empty strings and "-" placeholders become 0, as
// does anything that fails to parse. Currency symbols and letters are
// stripped, so "US$ 1.000,00" also parses.
func ParseBRLNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0
	}
	s = nonNumericPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParsePercent converts a percentage string ("9,75%" or "9,75") to a float,
// or nil when the field is empty or malformed.
func ParsePercent(s string) *float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" || s == "-" {
		return nil
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseDateBR converts a DD/MM/YYYY string to a time, or nil when empty or
// malformed.
func ParseDateBR(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("02/01/2006", s)
	if err != nil {
		return nil
	}
	return &t
}

// ParseInstallment extracts current and total from strings like "(3/12)".
// Anything that does not match yields (1, 1).
func ParseInstallment(s string) (current, total int) {
	m := installmentPattern.FindStringSubmatch(s)
	if m == nil {
		return 1, 1
	}
	current, _ = strconv.Atoi(m[1])
	total, _ = strconv.Atoi(m[2])
	if current < 1 {
		current = 1
	}
	if total < 1 {
		total = 1
	}
	return current, total
}

// parseRollover interprets the Prorrogado column.
func parseRollover(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sim", "s", "1", "true", "x":
		return true
	}
	return false
}
