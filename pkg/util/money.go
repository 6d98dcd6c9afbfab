package util

import "math"

// RoundCurrency rounds an amount to 2 decimal places.
// Only persisted amounts go through this; intermediate sums stay unrounded
// so rounding error does not compound across cost categories.
func RoundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}
