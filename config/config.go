// Package config defines the run configuration for a dividend
// distribution: input limits, the tier policy, payout settings, and the
// unit-conversion rate between the computation currency and the ledger's
// native unit. Configuration is passed explicitly into the engine so the
// same engine can be exercised against multiple policies without global
// state.
package config

import (
	"github.com/shopspring/decimal"

	"github.com/privestorg/libprivest-go/tiers"
)

// Limits bound the computation input.
type Limits struct {
	MaxInvestors int             // maximum investors per run
	MinProfit    decimal.Decimal // smallest accepted total profit
	MaxProfit    decimal.Decimal // largest accepted total profit
	MaxStake     decimal.Decimal // ceiling on a single stake; zero disables
}

// Config is the full run configuration.
type Config struct {
	Limits       Limits
	Tiers        tiers.Table
	Settings     tiers.Settings
	UsdToEthRate decimal.Decimal // 1 USD = UsdToEthRate ETH
}

// Default returns the shipped configuration: at most 100 investors, total
// profit in [0.01, 1e9] USD, the default tier table and settings, and a
// conversion rate of 0.0005 ETH per USD.
func Default() Config {
	return Config{
		Limits: Limits{
			MaxInvestors: 100,
			MinProfit:    decimal.RequireFromString("0.01"),
			MaxProfit:    decimal.NewFromInt(1_000_000_000),
			MaxStake:     decimal.NewFromInt(1_000_000_000),
		},
		Tiers:        tiers.DefaultTable(),
		Settings:     tiers.DefaultSettings(),
		UsdToEthRate: decimal.RequireFromString("0.0005"),
	}
}
