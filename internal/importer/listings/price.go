package listings

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// parsePrice accepts "12.50", "12,50", "1.234,56", "$1,234.56" and "€ 1 234".
// When both separators appear the last one is the decimal mark. A lone
// separator followed by exactly three digits groups thousands.
func parsePrice(s string) (decimal.Decimal, error) {
	clean := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsDigit(r), r == '.', r == ',', r == '-':
			return r
		default:
			return -1
		}
	}, s)

	if clean == "" {
		return decimal.Decimal{}, fmt.Errorf("invalid price %q", s)
	}

	lastDot := strings.LastIndex(clean, ".")
	lastComma := strings.LastIndex(clean, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case lastComma >= 0:
		clean = normalizeSingle(clean, ",")
	case lastDot >= 0:
		clean = normalizeSingle(clean, ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid price %q", s)
	}

	return d, nil
}

func normalizeSingle(s, sep string) string {
	if strings.Count(s, sep) > 1 {
		return strings.ReplaceAll(s, sep, "")
	}

	if i := strings.Index(s, sep); len(s)-i-1 == 3 {
		return strings.Replace(s, sep, "", 1)
	}

	return strings.Replace(s, sep, ".", 1)
}
