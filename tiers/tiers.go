// Package tiers holds the reward-tier policy: a static table mapping stake
// thresholds to payout multipliers, plus the performance-bonus curve. The
// policy is pure configuration — it is loaded once and read-only for the
// duration of a computation run.
package tiers

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tier is one bracket of the reward policy.
type Tier struct {
	ID          string
	Name        string
	Threshold   decimal.Decimal // minimum stake to qualify
	Multiplier  decimal.Decimal // >= 1.0
	Description string
}

// Table is an ordered tier list, highest threshold first. Exactly one tier
// applies to any stake: the first tier whose threshold does not exceed it.
type Table []Tier

// DefaultTable returns the shipped five-tier policy.
func DefaultTable() Table {
	return Table{
		{
			ID:          "platinum",
			Name:        "Platinum Investor",
			Threshold:   decimal.NewFromInt(1_000_000),
			Multiplier:  decimal.RequireFromString("1.20"),
			Description: "Top-tier investors with highest bonus",
		},
		{
			ID:          "gold",
			Name:        "Gold Investor",
			Threshold:   decimal.NewFromInt(500_000),
			Multiplier:  decimal.RequireFromString("1.15"),
			Description: "Large investors with significant bonus",
		},
		{
			ID:          "silver",
			Name:        "Silver Investor",
			Threshold:   decimal.NewFromInt(100_000),
			Multiplier:  decimal.RequireFromString("1.10"),
			Description: "Medium investors with standard bonus",
		},
		{
			ID:          "bronze",
			Name:        "Bronze Investor",
			Threshold:   decimal.NewFromInt(10_000),
			Multiplier:  decimal.RequireFromString("1.05"),
			Description: "Small investors with minimal bonus",
		},
		{
			ID:          "base",
			Name:        "Base Tier",
			Threshold:   decimal.Zero,
			Multiplier:  decimal.NewFromInt(1),
			Description: "Default tier for all investors",
		},
	}
}

// Validate checks the structural invariants of the table: non-empty,
// strictly descending thresholds, multipliers >= 1.0, and a zero-threshold
// catch-all as the final tier.
func (t Table) Validate() error {
	if len(t) == 0 {
		return ErrEmptyTable
	}
	for i, tier := range t {
		if tier.Multiplier.LessThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%w: tier %q has multiplier %s", ErrInvalidMultiplier, tier.ID, tier.Multiplier)
		}
		if i > 0 && tier.Threshold.GreaterThanOrEqual(t[i-1].Threshold) {
			return fmt.Errorf("%w: tier %q (%s) >= tier %q (%s)",
				ErrUnorderedTable, tier.ID, tier.Threshold, t[i-1].ID, t[i-1].Threshold)
		}
	}
	if t[len(t)-1].Threshold.Sign() != 0 {
		return ErrNoCatchAll
	}
	return nil
}

// ForStake resolves the tier for a stake: the highest-threshold tier whose
// threshold is <= stake. The table must have passed Validate, so the final
// zero-threshold tier always matches.
func (t Table) ForStake(stake decimal.Decimal) Tier {
	for _, tier := range t {
		if stake.GreaterThanOrEqual(tier.Threshold) {
			return tier
		}
	}
	return t[len(t)-1]
}

// Settings are the adjustable knobs of the payout policy.
type Settings struct {
	EnablePerformanceBonus bool
	MaxBonusCap            decimal.Decimal // ceiling on the combined multiplier
	MinPayout              decimal.Decimal // floor on any single payout
	RoundingPrecision      int32           // decimal places of the final amount
}

// DefaultSettings returns the shipped policy settings: performance bonus
// on, combined multiplier capped at 1.50, minimum payout 1, amounts
// rounded to 2 decimal places.
func DefaultSettings() Settings {
	return Settings{
		EnablePerformanceBonus: true,
		MaxBonusCap:            decimal.RequireFromString("1.50"),
		MinPayout:              decimal.NewFromInt(1),
		RoundingPrecision:      2,
	}
}

// Validate checks the settings ranges.
func (s Settings) Validate() error {
	if s.MaxBonusCap.LessThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: bonus cap %s below 1.0", ErrInvalidSettings, s.MaxBonusCap)
	}
	if s.MinPayout.Sign() < 0 {
		return fmt.Errorf("%w: negative minimum payout %s", ErrInvalidSettings, s.MinPayout)
	}
	if s.RoundingPrecision < 0 || s.RoundingPrecision > 18 {
		return fmt.Errorf("%w: rounding precision %d out of range [0,18]", ErrInvalidSettings, s.RoundingPrecision)
	}
	return nil
}
