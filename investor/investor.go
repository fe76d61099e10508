// Package investor models the stakeholders of one dividend computation:
// address identity, contribution stake, and the optional metadata consumed
// by bonus logic. Investors are constructed from untrusted input at the
// start of a run and are immutable afterwards.
package investor

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Metadata is the open attribute bag attached to an investor. It never
// affects identity or uniqueness; only bonus logic reads it.
type Metadata struct {
	InvestmentDate   string            `json:"investmentDate,omitempty"`
	PerformanceScore *decimal.Decimal  `json:"performanceScore,omitempty"`
	Extra            map[string]string `json:"extra,omitempty"`
}

// Investor is one payee in a dividend computation.
type Investor struct {
	Address  Address
	Stake    decimal.Decimal
	Name     string
	Metadata Metadata
}

// Validate checks the investor against the given stake ceiling. A zero
// maxStake disables the ceiling check.
func (inv *Investor) Validate(maxStake decimal.Decimal) error {
	if inv.Address.IsZero() {
		return fmt.Errorf("%w: zero address", ErrInvalidAddress)
	}
	if inv.Stake.Sign() <= 0 {
		return fmt.Errorf("%w: stake must be positive, got %s", ErrInvalidStake, inv.Stake)
	}
	if maxStake.Sign() > 0 && inv.Stake.GreaterThan(maxStake) {
		return fmt.Errorf("%w: stake %s exceeds maximum %s", ErrInvalidStake, inv.Stake, maxStake)
	}
	return nil
}

// CheckUnique verifies that no address appears twice in the list.
// Address comparison is by value, so case differences in the source text
// cannot smuggle in duplicates.
func CheckUnique(investors []Investor) error {
	seen := make(map[Address]int, len(investors))
	for i := range investors {
		if j, ok := seen[investors[i].Address]; ok {
			return fmt.Errorf("%w: %s at positions %d and %d",
				ErrDuplicateInvestor, investors[i].Address, j, i)
		}
		seen[investors[i].Address] = i
	}
	return nil
}
