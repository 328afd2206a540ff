package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimals shown for amounts
const MoneyPlaces = 2

// LineAmount returns quantity * rate, exact
func LineAmount(item Item) decimal.Decimal {
	return item.Rate.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// InvoiceTotal sums the exact line amounts. Nothing is rounded here; rounding
// happens once, when the amount is displayed.
func InvoiceTotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(LineAmount(item))
	}
	return total
}

// RoundMoney rounds half away from zero to cents, so 20.015 becomes 20.02
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}

// FormatMoney formats an amount as "$X,XXX.XX" with comma separators
func FormatMoney(amount decimal.Decimal) string {
	s := RoundMoney(amount).StringFixed(MoneyPlaces)

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	// Split at decimal point
	dotPos := len(s) - 3
	intPart := s[:dotPos]
	decPart := s[dotPos:]

	// Add commas to integer part
	result := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, intPart[i])
	}

	prefix := "$"
	if negative {
		prefix = "-$"
	}
	return prefix + string(result) + decPart
}
