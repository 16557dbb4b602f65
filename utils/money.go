package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundCents rounds a currency amount to 2 decimal places, half away from zero.
// Non-finite amounts pass through unchanged.
func RoundCents(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
