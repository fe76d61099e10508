package payout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privestorg/libprivest-go/config"
	"github.com/privestorg/libprivest-go/investor"
	"github.com/privestorg/libprivest-go/tiers"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func makeAddress(seed byte) investor.Address {
	var addr investor.Address
	for i := range addr {
		addr[i] = seed
	}
	return addr
}

func makeInvestor(seed byte, stake string) investor.Investor {
	return investor.Investor{
		Address: makeAddress(seed),
		Stake:   dec(stake),
	}
}

func defaultArgs() (tiers.Table, tiers.Settings, config.Limits) {
	cfg := config.Default()
	return cfg.Tiers, cfg.Settings, cfg.Limits
}

// --- Scenario tests ---

// Three silver-tier investors, no bonus: base shares equal the stakes and
// every amount is scaled by the 1.10 silver multiplier.
func TestCompute_SilverTierScenario(t *testing.T) {
	table, settings, limits := defaultArgs()
	investors := []investor.Investor{
		makeInvestor(0x01, "400000"),
		makeInvestor(0x02, "350000"),
		makeInvestor(0x03, "250000"),
	}

	records, err := Compute(dec("1000000"), investors, table, settings, limits)
	require.NoError(t, err)
	require.Len(t, records, 3)

	wantBase := []string{"400000", "350000", "250000"}
	wantFinal := []string{"440000", "385000", "275000"}
	for i, rec := range records {
		assert.Equal(t, investors[i].Address, rec.Address, "order must be preserved")
		assert.Equal(t, "silver", rec.TierID)
		assert.True(t, rec.BaseShare.Equal(dec(wantBase[i])), "base %s", rec.BaseShare)
		assert.True(t, rec.Multiplier.Equal(dec("1.10")))
		assert.True(t, rec.EffectiveBonus.Equal(dec("1.10")))
		assert.True(t, rec.FinalAmount.Equal(dec(wantFinal[i])), "final %s", rec.FinalAmount)
	}

	sum := payoutSum(records)
	assert.True(t, sum.Equal(dec("1100000")), "sum %s", sum)
}

func TestCompute_BonusCapApplies(t *testing.T) {
	table, settings, limits := defaultArgs()
	// Platinum 1.20 times a ~1.20 performance bonus lands near 1.44;
	// tighten the cap below that so it binds.
	settings.MaxBonusCap = dec("1.40")

	score := dec("100")
	inv := investor.Investor{
		Address:  makeAddress(0x0A),
		Stake:    dec("1000000"),
		Metadata: investor.Metadata{PerformanceScore: &score},
	}

	records, err := Compute(dec("1000000"), []investor.Investor{inv}, table, settings, limits)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "platinum", records[0].TierID)
	assert.True(t, records[0].EffectiveBonus.Equal(dec("1.4")), "effective %s", records[0].EffectiveBonus)
	assert.True(t, records[0].FinalAmount.Equal(dec("1400000")), "final %s", records[0].FinalAmount)
}

func TestCompute_BonusDisabledIgnoresScore(t *testing.T) {
	table, settings, limits := defaultArgs()
	settings.EnablePerformanceBonus = false

	score := dec("100")
	inv := investor.Investor{
		Address:  makeAddress(0x0B),
		Stake:    dec("200000"),
		Metadata: investor.Metadata{PerformanceScore: &score},
	}

	records, err := Compute(dec("100000"), []investor.Investor{inv}, table, settings, limits)
	require.NoError(t, err)
	assert.True(t, records[0].EffectiveBonus.Equal(dec("1.10")))
}

func TestCompute_MinPayoutFloor(t *testing.T) {
	table, settings, limits := defaultArgs()

	// A dust-sized second stake gets floored up to the 1-unit minimum.
	investors := []investor.Investor{
		makeInvestor(0x01, "999999"),
		makeInvestor(0x02, "0.5"),
	}

	records, err := Compute(dec("100"), investors, table, settings, limits)
	require.NoError(t, err)
	assert.True(t, records[1].FinalAmount.Equal(dec("1")), "floored amount %s", records[1].FinalAmount)
}

// --- Property tests ---

// The distributed sum equals the per-record rounded amounts, every
// effective bonus respects the cap, and re-running is byte-stable.
func TestCompute_ConservationWithPolicy(t *testing.T) {
	table, settings, limits := defaultArgs()
	score := dec("92")
	investors := []investor.Investor{
		makeInvestor(0x01, "300000"),
		{Address: makeAddress(0x02), Stake: dec("500000"), Metadata: investor.Metadata{PerformanceScore: &score}},
		makeInvestor(0x03, "200000"),
	}

	first, err := Compute(dec("1000000"), investors, table, settings, limits)
	require.NoError(t, err)
	second, err := Compute(dec("1000000"), investors, table, settings, limits)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.True(t, first[i].EffectiveBonus.LessThanOrEqual(settings.MaxBonusCap))
		assert.True(t, first[i].FinalAmount.Equal(second[i].FinalAmount), "record %d not deterministic", i)
	}
}

func TestCompute_TierMonotonicity(t *testing.T) {
	table, settings, limits := defaultArgs()
	investors := []investor.Investor{
		makeInvestor(0x01, "600000"),
		makeInvestor(0x02, "60000"),
	}

	records, err := Compute(dec("1000000"), investors, table, settings, limits)
	require.NoError(t, err)
	assert.True(t, records[0].Multiplier.GreaterThanOrEqual(records[1].Multiplier))
}

// --- Validation tests ---

func TestCompute_InvalidInput(t *testing.T) {
	table, settings, limits := defaultArgs()
	valid := makeInvestor(0x01, "1000")

	tooMany := make([]investor.Investor, limits.MaxInvestors+1)
	for i := range tooMany {
		tooMany[i] = makeInvestor(byte(i+1), "1000")
	}

	tests := []struct {
		name      string
		total     string
		investors []investor.Investor
	}{
		{"zero total", "0", []investor.Investor{valid}},
		{"negative total", "-10", []investor.Investor{valid}},
		{"below min profit", "0.001", []investor.Investor{valid}},
		{"above max profit", "2000000000", []investor.Investor{valid}},
		{"empty list", "1000", nil},
		{"too many investors", "1000", tooMany},
		{"zero stake investor", "1000", []investor.Investor{makeInvestor(0x01, "1000"), {Address: makeAddress(0x02)}}},
		{"duplicate address", "1000", []investor.Investor{valid, valid}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(dec(tt.total), tt.investors, table, settings, limits)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// Zero total stake is guarded separately, but per-investor validation
// rejects non-positive stakes first, so the degenerate path cannot be
// reached through legitimate input.
func TestCompute_ZeroStakeRejectedBeforeDegenerateCheck(t *testing.T) {
	table, settings, limits := defaultArgs()
	investors := []investor.Investor{
		{Address: makeAddress(0x01), Stake: decimal.Zero},
		{Address: makeAddress(0x02), Stake: decimal.Zero},
	}

	_, err := Compute(dec("1000"), investors, table, settings, limits)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrDegenerateInput)
}

// --- Summary tests ---

func TestSummarize(t *testing.T) {
	table, settings, limits := defaultArgs()
	investors := []investor.Investor{
		makeInvestor(0x01, "400000"),
		makeInvestor(0x02, "350000"),
		makeInvestor(0x03, "250000"),
	}

	records, err := Compute(dec("1000000"), investors, table, settings, limits)
	require.NoError(t, err)

	sum := Summarize(dec("1000000"), records)
	assert.True(t, sum.TotalPayout.Equal(dec("1100000")))
	assert.True(t, sum.AllocationPercentage.Equal(dec("110")), "allocation %s", sum.AllocationPercentage)
	assert.Equal(t, 3, sum.InvestorCount)
	assert.Equal(t, map[string]int{"silver": 3}, sum.TierDistribution)
}

func payoutSum(records []Record) decimal.Decimal {
	total := decimal.Zero
	for i := range records {
		total = total.Add(records[i].FinalAmount)
	}
	return total
}
