// file: internals/features/finance/fees/service/money.go
package service

import "math"

/* =========================================================
   Minor-unit (cent) arithmetic. All discount math runs on
   int64 cents; conversion back to major units happens only
   at the response boundary. Repeated percentage math on
   binary floats drifts — integers do not.
========================================================= */

// ToCents rounds a major-unit amount to integer cents, half-up.
func ToCents(major float64) int64 {
	return int64(math.Round(major * 100))
}

// ToMajor converts cents back to a major-unit amount.
func ToMajor(cents int64) float64 {
	return float64(cents) / 100
}

// PercentOf computes pct% of base cents, rounded half-up.
// e.g. PercentOf(12345, 33) == 4074.
func PercentOf(baseCents int64, pct float64) int64 {
	return int64(math.Round(float64(baseCents) * pct / 100))
}

func minCents(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
