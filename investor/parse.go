package investor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxInputSize caps the input document at 1 MiB.
const MaxInputSize = 1 << 20

// RunOverrides are the per-run configuration knobs an input document may
// override. Nil fields fall back to the caller's defaults.
type RunOverrides struct {
	EnablePerformanceBonus *bool            `json:"enablePerformanceBonus,omitempty"`
	MinPayout              *decimal.Decimal `json:"minPayout,omitempty"`
	RoundingPrecision      *int32           `json:"roundingPrecision,omitempty"`
	Currency               string           `json:"currency,omitempty"`
}

// Input is one parsed and validated computation input document.
type Input struct {
	TotalProfit decimal.Decimal
	Investors   []Investor
	Config      RunOverrides
	Metadata    map[string]string
}

// rawInput mirrors the input JSON document. Investor entries are kept as
// raw messages so that non-object shapes can be rejected explicitly.
type rawInput struct {
	TotalProfit *decimal.Decimal  `json:"totalProfit"`
	Investors   []json.RawMessage `json:"investors"`
	Config      *RunOverrides     `json:"config"`
	Metadata    map[string]string `json:"metadata"`
}

type rawInvestor struct {
	Address string          `json:"address"`
	Stake   decimal.Decimal `json:"stake"`
	Name    string          `json:"name"`
	Meta    Metadata        `json:"metadata"`
}

// ParseInput parses an input document of the form
//
//	{"totalProfit": ..., "investors": [{"address", "stake", "name", "metadata"}, ...], "config": {...}}
//
// Every investor entry must be a keyed object; positional-array entries and
// any other shape fail with ErrMalformedInput. Addresses are canonicalized
// and checked for duplicates. Per-investor stake validation (positivity,
// ceiling) is left to the payout engine, which knows the configured limits.
func ParseInput(data []byte) (*Input, error) {
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var raw rawInput
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	// Decode stops at the end of the first JSON value; anything after it
	// is a second document and the input is rejected.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after input document", ErrMalformedInput)
	}
	if raw.TotalProfit == nil {
		return nil, fmt.Errorf("%w: missing totalProfit", ErrMalformedInput)
	}
	if len(raw.Investors) == 0 {
		return nil, fmt.Errorf("%w: investors must be a non-empty array", ErrMalformedInput)
	}

	investors := make([]Investor, 0, len(raw.Investors))
	for i, msg := range raw.Investors {
		inv, err := parseInvestor(msg)
		if err != nil {
			return nil, fmt.Errorf("investor %d: %w", i, err)
		}
		investors = append(investors, *inv)
	}

	if err := CheckUnique(investors); err != nil {
		return nil, err
	}

	in := &Input{
		TotalProfit: *raw.TotalProfit,
		Investors:   investors,
		Metadata:    raw.Metadata,
	}
	if raw.Config != nil {
		in.Config = *raw.Config
	}
	return in, nil
}

// parseInvestor decodes one investor entry, rejecting everything except a
// keyed JSON object.
func parseInvestor(msg json.RawMessage) (*Investor, error) {
	trimmed := bytes.TrimLeft(msg, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: entry must be an object, got %s", ErrMalformedInput, snippet(trimmed))
	}

	var raw rawInvestor
	if err := json.Unmarshal(msg, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}

	addr, err := ParseAddress(strings.TrimSpace(raw.Address))
	if err != nil {
		return nil, err
	}

	return &Investor{
		Address:  addr,
		Stake:    raw.Stake,
		Name:     raw.Name,
		Metadata: raw.Meta,
	}, nil
}

func snippet(b []byte) string {
	const max = 24
	if len(b) > max {
		b = b[:max]
	}
	return string(b)
}
