package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount renders a monetary value with two decimals and thousand
// separators, e.g. 1234567.5 -> "1,234,567.50". Used by the printable
// transaction report.
func Amount(d decimal.Decimal) string {
	numStr := d.StringFixed(2)

	isNegative := strings.HasPrefix(numStr, "-")
	if isNegative {
		numStr = strings.TrimPrefix(numStr, "-")
	}

	parts := strings.SplitN(numStr, ".", 2)
	integerPart := parts[0]
	decimalPart := ""
	if len(parts) == 2 {
		decimalPart = "." + parts[1]
	}

	length := len(integerPart)

	start := length % 3
	if start == 0 {
		start = 3
	}

	var intPart strings.Builder

	if isNegative {
		intPart.WriteString("-")
	}

	intPart.WriteString(integerPart[:start])

	for i := start; i < length; i += 3 {
		intPart.WriteString(",")
		intPart.WriteString(integerPart[i : i+3])
	}

	return intPart.String() + decimalPart
}

// Percent renders a ratio already scaled to percent with two decimals
// and a trailing sign, e.g. 2.5 -> "2.50%".
func Percent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}
