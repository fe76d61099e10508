// Package payout implements the deterministic payout engine. Given a total
// distributable amount, an investor list, and a tier policy, it produces
// one audit-complete record per investor. The computation is pure: no
// clock, no randomness, no reordering — its output feeds a cryptographic
// commitment that an independent party must reproduce bit-for-bit.
package payout

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/privestorg/libprivest-go/config"
	"github.com/privestorg/libprivest-go/investor"
	"github.com/privestorg/libprivest-go/tiers"
)

// Record is one investor's payout with every intermediate value retained
// for audit.
type Record struct {
	Address        investor.Address
	Name           string
	OriginalStake  decimal.Decimal
	BaseShare      decimal.Decimal // pro-rata share before adjustment
	TierID         string
	Multiplier     decimal.Decimal // tier multiplier alone
	EffectiveBonus decimal.Decimal // combined multiplier after cap, 4 dp
	FinalAmount    decimal.Decimal // rounded to the configured precision
}

// Compute derives payout records for all investors. Records are emitted in
// input order; that order is part of the commitment and must not change.
//
// The distributed sum may exceed totalProfit: tier multipliers, the
// performance bonus, and the minimum-payout floor all inflate individual
// amounts, and no reconciliation against the nominal pool is performed.
// Over-allocation is observable through Summarize.
func Compute(totalProfit decimal.Decimal, investors []investor.Investor,
	table tiers.Table, settings tiers.Settings, limits config.Limits) ([]Record, error) {

	if err := validate(totalProfit, investors, limits); err != nil {
		return nil, err
	}

	totalStake := decimal.Zero
	for i := range investors {
		totalStake = totalStake.Add(investors[i].Stake)
	}
	// Unreachable through validated input (every stake is positive), but
	// the division below must never see zero.
	if totalStake.Sign() == 0 {
		return nil, ErrDegenerateInput
	}

	bonusCap := settings.MaxBonusCap
	records := make([]Record, len(investors))
	for i := range investors {
		inv := &investors[i]

		baseShare := totalProfit.Mul(inv.Stake).Div(totalStake)
		tier := table.ForStake(inv.Stake)

		combined := tier.Multiplier
		if settings.EnablePerformanceBonus && inv.Metadata.PerformanceScore != nil {
			combined = combined.Mul(tiers.PerformanceBonus(*inv.Metadata.PerformanceScore, inv.Stake))
		}

		effective := combined
		if effective.GreaterThan(bonusCap) {
			effective = bonusCap
		}

		amount := baseShare.Mul(effective)
		if amount.LessThan(settings.MinPayout) {
			amount = settings.MinPayout
		}

		records[i] = Record{
			Address:        inv.Address,
			Name:           inv.Name,
			OriginalStake:  inv.Stake,
			BaseShare:      baseShare.Round(settings.RoundingPrecision),
			TierID:         tier.ID,
			Multiplier:     tier.Multiplier,
			EffectiveBonus: effective.Round(4),
			FinalAmount:    amount.Round(settings.RoundingPrecision),
		}
	}

	return records, nil
}

// validate rejects malformed input before any arithmetic happens. All
// failures are terminal for the run.
func validate(totalProfit decimal.Decimal, investors []investor.Investor, limits config.Limits) error {
	if totalProfit.Sign() <= 0 {
		return fmt.Errorf("%w: total profit must be positive, got %s", ErrInvalidInput, totalProfit)
	}
	if limits.MinProfit.Sign() > 0 && totalProfit.LessThan(limits.MinProfit) {
		return fmt.Errorf("%w: total profit %s below minimum %s", ErrInvalidInput, totalProfit, limits.MinProfit)
	}
	if limits.MaxProfit.Sign() > 0 && totalProfit.GreaterThan(limits.MaxProfit) {
		return fmt.Errorf("%w: total profit %s above maximum %s", ErrInvalidInput, totalProfit, limits.MaxProfit)
	}
	if len(investors) == 0 {
		return fmt.Errorf("%w: no investors", ErrInvalidInput)
	}
	if limits.MaxInvestors > 0 && len(investors) > limits.MaxInvestors {
		return fmt.Errorf("%w: %d investors exceeds maximum %d", ErrInvalidInput, len(investors), limits.MaxInvestors)
	}

	for i := range investors {
		if err := investors[i].Validate(limits.MaxStake); err != nil {
			return fmt.Errorf("%w: investor %d: %w", ErrInvalidInput, i, err)
		}
	}
	if err := investor.CheckUnique(investors); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}
