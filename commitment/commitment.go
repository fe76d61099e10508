// Package commitment converts payout records into the canonical byte
// encoding shared by both halves of the distribution protocol and computes
// the commitment hash over it. The encoding (field order, word widths,
// offset layout) and the hash-of-hashes construction are a versioned wire
// contract: the off-ledger computation and the on-ledger verifier must
// reproduce them bit-for-bit, or stored results silently stop verifying.
package commitment

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/sha3"

	"github.com/privestorg/libprivest-go/investor"
	"github.com/privestorg/libprivest-go/payout"
)

// HashSize is the byte length of a commitment hash.
const HashSize = 32

// Commitment is the ordered (investors, amounts) pair plus its digest.
// Order is significant: it is part of what is hashed.
type Commitment struct {
	Investors []investor.Address
	Amounts   []*big.Int // ledger native unit (wei)
	Hash      [HashSize]byte
}

// Build converts payout records into a commitment, preserving record
// order. Amounts are converted from the computation currency to wei via
// rate (1 USD = rate ETH) and must be positive after conversion.
func Build(records []payout.Record, rate decimal.Decimal) (*Commitment, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records", ErrLengthMismatch)
	}
	if rate.Sign() <= 0 {
		return nil, fmt.Errorf("%w: non-positive conversion rate %s", ErrEncoding, rate)
	}

	c := &Commitment{
		Investors: make([]investor.Address, len(records)),
		Amounts:   make([]*big.Int, len(records)),
	}
	for i := range records {
		if records[i].Address.IsZero() {
			return nil, fmt.Errorf("%w: record %d: %w", ErrEncoding, i, ErrInvalidAddress)
		}
		wei := UsdToWei(records[i].FinalAmount, rate)
		if wei.Sign() <= 0 {
			return nil, fmt.Errorf("%w: record %d: %w: %s converts to %s wei",
				ErrEncoding, i, ErrInvalidAmount, records[i].FinalAmount, wei)
		}
		c.Investors[i] = records[i].Address
		c.Amounts[i] = wei
	}

	hash, err := ComputeHash(c.Investors, c.Amounts)
	if err != nil {
		return nil, err
	}
	c.Hash = hash
	return c, nil
}

// ComputeHash derives the commitment digest:
//
//	keccak256(keccak256(encode(investors)) || keccak256(encode(amounts)))
//
// The concatenation order and the hash-of-hashes structure are part of the
// commitment definition.
func ComputeHash(investors []investor.Address, amounts []*big.Int) ([HashSize]byte, error) {
	var hash [HashSize]byte

	encAmounts, err := encodeAmounts(amounts)
	if err != nil {
		return hash, err
	}

	outer := sha3.NewLegacyKeccak256()
	outer.Write(keccak256(encodeAddresses(investors)))
	outer.Write(keccak256(encAmounts))
	copy(hash[:], outer.Sum(nil))
	return hash, nil
}

// Verify checks the structural invariants of the commitment and recomputes
// its hash. A stored commitment whose recomputed hash differs is
// policy-violating, not merely advisory.
func (c *Commitment) Verify() error {
	if len(c.Investors) == 0 || len(c.Investors) != len(c.Amounts) {
		return fmt.Errorf("%w: %d investors, %d amounts", ErrLengthMismatch, len(c.Investors), len(c.Amounts))
	}
	for i, addr := range c.Investors {
		if addr.IsZero() {
			return fmt.Errorf("%w: investor %d is the zero address", ErrInvalidAddress, i)
		}
	}
	for i, amt := range c.Amounts {
		if amt == nil || amt.Sign() <= 0 {
			return fmt.Errorf("%w: amount %d must be positive", ErrInvalidAmount, i)
		}
	}

	recomputed, err := ComputeHash(c.Investors, c.Amounts)
	if err != nil {
		return err
	}
	if recomputed != c.Hash {
		return fmt.Errorf("%w: stored %x, recomputed %x", ErrHashMismatch, c.Hash, recomputed)
	}
	return nil
}

// keccak256 returns the legacy Keccak-256 digest of data.
func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}
