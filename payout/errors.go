package payout

import "errors"

var (
	// ErrInvalidInput indicates malformed caller data: non-positive or
	// out-of-range total profit, an empty or oversized investor list, or
	// an invalid or duplicate investor.
	ErrInvalidInput = errors.New("payout: invalid input")

	// ErrDegenerateInput indicates the total stake across all investors
	// is zero, so pro-rata shares are undefined.
	ErrDegenerateInput = errors.New("payout: zero total stake")
)
