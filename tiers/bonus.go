package tiers

import (
	"math"

	"github.com/shopspring/decimal"
)

// bonusScale pins the performance-bonus output to 9 decimal places so the
// float64 logarithm inside cannot leak platform-dependent trailing digits
// into the commitment.
const bonusScale = 9

// PerformanceBonus computes the confidential bonus multiplier for a
// performance score in [0,100] and a stake magnitude:
//
//	1 + (clamp(score,0,100)/100)*0.15 + (log10(stake+1)/6)*0.05
//
// The curve is monotonic in both arguments. Scores outside [0,100] are
// clamped rather than rejected. The result is rounded to 9 decimal places
// and must be identically reproducible on every party that re-derives the
// commitment.
func PerformanceBonus(score, stake decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)

	clamped := score
	if clamped.Sign() < 0 {
		clamped = decimal.Zero
	} else if clamped.GreaterThan(hundred) {
		clamped = hundred
	}

	scorePart := clamped.Div(hundred).Mul(decimal.RequireFromString("0.15"))

	// log10(stake+1) / log10(1_000_000)
	stakeF, _ := stake.Float64()
	stakeFactor := decimal.NewFromFloat(math.Log10(stakeF+1) / 6).Round(bonusScale)
	stakePart := stakeFactor.Mul(decimal.RequireFromString("0.05"))

	return decimal.NewFromInt(1).Add(scorePart).Add(stakePart).Round(bonusScale)
}
