package housecsv

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	errNegativePrice = errors.New("price cannot be negative")
	errPriceTooLarge = errors.New("price is too large")
)

var maxPrice = decimal.NewFromInt(math.MaxInt64)

// parsePrice reads a price as typed into a spreadsheet and rounds it to
// whole currency units. It accepts currency markers and either "." or ","
// as the thousands separator: "110000", "$110,000", "1.250.000 ₫",
// "1.234,56 €" and "1,234.56" are all valid.
func parsePrice(s string) (int64, error) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' || r == ',' || r == '-' {
			return r
		}

		return -1
	}, s)

	if clean == "" {
		return 0, fmt.Errorf("invalid price %q", s)
	}

	d, err := decimal.NewFromString(normalizeSeparators(clean))
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}

	if d.IsNegative() {
		return 0, errNegativePrice
	}

	d = d.Round(0)
	if d.GreaterThan(maxPrice) {
		return 0, errPriceTooLarge
	}

	return d.IntPart(), nil
}

// normalizeSeparators rewrites a number to use "." as the only decimal
// separator. When both separators occur the last one is the decimal mark.
// A lone separator repeated, or followed by exactly three digits, groups
// thousands.
func normalizeSeparators(s string) string {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			return strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1)
		}

		return strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		return resolveSingle(s, ",")
	case lastDot >= 0:
		return resolveSingle(s, ".")
	}

	return s
}

func resolveSingle(s, sep string) string {
	if strings.Count(s, sep) > 1 || len(s)-strings.LastIndex(s, sep)-1 == 3 {
		return strings.ReplaceAll(s, sep, "")
	}

	return strings.Replace(s, sep, ".", 1)
}
