// Package gateway is the seam between the off-ledger confidential
// computation and the on-ledger payout ledger. It accepts a task result as
// callback bytes, verifies it — including recomputing the commitment hash
// rather than trusting the embedded one — and forwards it to the ledger.
// The gateway performs no computation of its own.
package gateway

import (
	"fmt"
	"math/big"

	"github.com/privestorg/libprivest-go/commitment"
	"github.com/privestorg/libprivest-go/investor"
	"github.com/privestorg/libprivest-go/ledger"
)

// Registrar is the ledger-side registration transition. *ledger.Ledger
// satisfies it.
type Registrar interface {
	Register(id ledger.TaskID, investors []investor.Address, amounts []*big.Int, resultHash [32]byte) error
}

// Gateway validates and forwards committed results.
type Gateway struct {
	registrar Registrar
	authority investor.Address
}

// New creates a gateway forwarding to registrar. Only authority may submit
// results; in production this is the confidential-execution network's
// bridging identity.
func New(registrar Registrar, authority investor.Address) *Gateway {
	return &Gateway{registrar: registrar, authority: authority}
}

// Submit accepts a computed result for a task. The callback bytes must
// decode to the canonical (address list, amount list, hash) payload; the
// decoded structure is re-validated defensively and its hash recomputed
// before the result reaches the ledger.
//
// A DuplicateTask failure is terminal for this taskID — the caller must
// not retry with the same ID. Structural failures are likewise terminal
// for the submission.
func (g *Gateway) Submit(caller investor.Address, taskID ledger.TaskID, callback []byte) error {
	if caller != g.authority {
		return fmt.Errorf("%w: %s", ErrNotAuthorized, caller)
	}

	c, err := commitment.DecodeCallback(callback)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}

	// Verify recomputes the hash; a commitment whose embedded hash does
	// not match its arrays never reaches the ledger.
	if err := c.Verify(); err != nil {
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
	if err := checkUnique(c.Investors); err != nil {
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}

	return g.registrar.Register(taskID, c.Investors, c.Amounts, c.Hash)
}

// checkUnique rejects results that pay the same address twice; the claim
// transition assumes at most one entry per investor per task.
func checkUnique(addrs []investor.Address) error {
	seen := make(map[investor.Address]struct{}, len(addrs))
	for i, a := range addrs {
		if _, ok := seen[a]; ok {
			return fmt.Errorf("%w: %s at index %d", ErrDuplicateInvestor, a, i)
		}
		seen[a] = struct{}{}
	}
	return nil
}
