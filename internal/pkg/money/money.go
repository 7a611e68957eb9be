// internal/pkg/money/money.go

// Package money formats integer minor-unit amounts for display.
// All arithmetic elsewhere stays in int64 minor units; rounding happens
// only here, at the formatting boundary.
package money

import "fmt"

// ToMajor converts a minor-unit amount to a major-unit float for display
func ToMajor(amount int64) float64 {
	return float64(amount) / 100
}

// Format renders a minor-unit amount as a currency string, e.g. "USD 19.99"
func Format(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s %s%d.%02d", currency, sign, amount/100, amount%100)
}
