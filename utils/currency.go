package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount as a euro string with thousand separators,
// e.g. 1512.5 -> "€1.512,50". Used in notification texts.
func FormatCurrency(amount decimal.Decimal) string {
	formatted := amount.StringFixed(2)

	neg := strings.HasPrefix(formatted, "-")
	formatted = strings.TrimPrefix(formatted, "-")

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	out := "€" + strings.Join(groups, ".") + "," + decimalPart
	if neg {
		out = "-" + out
	}
	return out
}
