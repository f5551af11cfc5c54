package service

import (
	"fmt"
	"strings"
)

// formatCurrency renders an amount with the configured symbol and
// thousands separators, e.g. 1500 -> "$1,500.00".
func formatCurrency(symbol string, amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	whole := fmt.Sprintf("%.2f", amount)
	intPart, fracPart, _ := strings.Cut(whole, ".")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := symbol + strings.Join(groups, ",") + "." + fracPart
	if negative {
		out = "-" + out
	}
	return out
}
