package tiers

import "errors"

var (
	// ErrEmptyTable indicates the tier table has no tiers.
	ErrEmptyTable = errors.New("tiers: empty tier table")

	// ErrNoCatchAll indicates the table lacks a zero-threshold tier, so
	// some stakes would resolve to no tier at all.
	ErrNoCatchAll = errors.New("tiers: no zero-threshold catch-all tier")

	// ErrUnorderedTable indicates tier thresholds are not strictly
	// descending.
	ErrUnorderedTable = errors.New("tiers: thresholds must be strictly descending")

	// ErrInvalidMultiplier indicates a tier multiplier below 1.0.
	ErrInvalidMultiplier = errors.New("tiers: multiplier must be >= 1.0")

	// ErrInvalidSettings indicates a settings field is out of range.
	ErrInvalidSettings = errors.New("tiers: invalid settings")
)
