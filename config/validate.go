package config

import "fmt"

// Validate checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func Validate(cfg Config) error {
	if cfg.Limits.MaxInvestors <= 0 {
		return fmt.Errorf("%w: max investors must be positive, got %d", ErrInvalidLimit, cfg.Limits.MaxInvestors)
	}
	if cfg.Limits.MinProfit.Sign() <= 0 {
		return fmt.Errorf("%w: min profit must be positive, got %s", ErrInvalidLimit, cfg.Limits.MinProfit)
	}
	if cfg.Limits.MaxProfit.LessThan(cfg.Limits.MinProfit) {
		return fmt.Errorf("%w: max profit %s below min profit %s",
			ErrInvalidLimit, cfg.Limits.MaxProfit, cfg.Limits.MinProfit)
	}
	if cfg.Limits.MaxStake.Sign() < 0 {
		return fmt.Errorf("%w: negative max stake %s", ErrInvalidLimit, cfg.Limits.MaxStake)
	}

	if err := cfg.Tiers.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTiers, err)
	}
	if err := cfg.Settings.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	if cfg.UsdToEthRate.Sign() <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidRate, cfg.UsdToEthRate)
	}
	return nil
}
