// Package distributor is the off-ledger business-logic layer. It composes
// parsing, validation, the payout engine, and commitment construction into
// the single deterministic run that executes inside the confidential
// execution environment. Adapters (the TEE entrypoint, local test
// harnesses) call Distributor methods rather than the packages directly.
package distributor

import (
	"fmt"

	"github.com/privestorg/libprivest-go/commitment"
	"github.com/privestorg/libprivest-go/config"
	"github.com/privestorg/libprivest-go/investor"
	"github.com/privestorg/libprivest-go/payout"
	"github.com/privestorg/libprivest-go/tiers"
)

// Result is the complete output of one computation run. Callback holds
// the canonical bytes delivered to the submission gateway; Records and
// Summary are the off-chain audit artifacts and are never sent on-ledger.
type Result struct {
	Records    []payout.Record
	Summary    payout.Summary
	Commitment *commitment.Commitment
	Callback   []byte
}

// Distributor runs dividend computations under one configuration.
type Distributor struct {
	cfg config.Config
}

// New creates a distributor. The configuration is validated once here so
// Run never executes against a broken policy.
func New(cfg config.Config) (*Distributor, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return &Distributor{cfg: cfg}, nil
}

// Run executes the full off-ledger half of the protocol on one input
// document: parse, validate, compute payouts, build the commitment, and
// encode the callback payload. Identical input bytes always produce an
// identical Callback — determinism end-to-end is the contract that lets
// the verifying side reproduce the commitment hash.
func (d *Distributor) Run(input []byte) (*Result, error) {
	in, err := investor.ParseInput(input)
	if err != nil {
		return nil, fmt.Errorf("distributor: parse input: %w", err)
	}

	settings := d.applyOverrides(in.Config)
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("distributor: input config: %w", err)
	}

	records, err := payout.Compute(in.TotalProfit, in.Investors, d.cfg.Tiers, settings, d.cfg.Limits)
	if err != nil {
		return nil, err
	}

	com, err := commitment.Build(records, d.cfg.UsdToEthRate)
	if err != nil {
		return nil, err
	}

	callback, err := commitment.EncodeCallback(com)
	if err != nil {
		return nil, err
	}

	return &Result{
		Records:    records,
		Summary:    payout.Summarize(in.TotalProfit, records),
		Commitment: com,
		Callback:   callback,
	}, nil
}

// applyOverrides merges per-run input overrides onto the configured
// settings. Only the knobs the input document is allowed to touch are
// merged; the tier table and bonus cap stay operator-controlled.
func (d *Distributor) applyOverrides(ov investor.RunOverrides) tiers.Settings {
	settings := d.cfg.Settings
	if ov.EnablePerformanceBonus != nil {
		settings.EnablePerformanceBonus = *ov.EnablePerformanceBonus
	}
	if ov.MinPayout != nil {
		settings.MinPayout = *ov.MinPayout
	}
	if ov.RoundingPrecision != nil {
		settings.RoundingPrecision = *ov.RoundingPrecision
	}
	return settings
}
