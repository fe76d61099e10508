// Package ledger implements the on-ledger half of the dividend protocol:
// an append-only task registry whose per-investor payouts each transition
// from claimable to claimed exactly once. All state-mutating operations
// are serialized and all-or-nothing — a failed call leaves no trace.
package ledger

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/privestorg/libprivest-go/investor"
)

// TaskIDSize is the byte length of a task identifier.
const TaskIDSize = 32

// TaskID is an externally supplied opaque task key.
type TaskID [TaskIDSize]byte

// Payout is one investor's entry within a registered task.
type Payout struct {
	Investor investor.Address
	Amount   *big.Int // ledger native unit (wei)
	Claimed  bool
}

// Task is one registered distribution result. Tasks are never deleted.
type Task struct {
	ID         TaskID
	ResultHash [32]byte
	Timestamp  int64 // unix seconds, ledger-assigned at registration
	Payouts    []Payout
}

// Transfer disburses native currency to an investor. Implementations must
// either complete fully or fail without side effects; the ledger rolls the
// claim back when a transfer fails.
type Transfer func(to investor.Address, amount *big.Int) error

// Ledger is the on-ledger authority over tasks and claims.
type Ledger struct {
	mu       sync.Mutex
	store    Store
	transfer Transfer
	sink     EventSink
	now      func() int64
}

// New creates a ledger over the given store and disbursement function.
func New(store Store, transfer Transfer) *Ledger {
	return &Ledger{
		store:    store,
		transfer: transfer,
		now:      func() int64 { return time.Now().Unix() },
	}
}

// SetEventSink installs an observer for registration and claim events.
func (l *Ledger) SetEventSink(sink EventSink) { l.sink = sink }

// SetClock overrides the timestamp source. Intended for tests.
func (l *Ledger) SetClock(now func() int64) { l.now = now }

// Register stores a task result exactly once. It fails with
// ErrDuplicateTask if the ID is taken, and with ErrLengthMismatch,
// ErrInvalidAddress, or ErrInvalidAmount if the arrays violate the
// commitment invariants. On success every payout starts claimable and a
// PayoutsProcessed event is emitted.
//
// Register performs no funding check: a task can be registered against an
// under-funded pool, deferring the failure to claim time. This mirrors the
// external contract and is deliberate.
func (l *Ledger) Register(id TaskID, investors []investor.Address, amounts []*big.Int, resultHash [32]byte) error {
	if len(investors) == 0 || len(investors) != len(amounts) {
		return fmt.Errorf("%w: %d investors, %d amounts", ErrLengthMismatch, len(investors), len(amounts))
	}
	for i, addr := range investors {
		if addr.IsZero() {
			return fmt.Errorf("%w: index %d", ErrInvalidAddress, i)
		}
	}
	for i, amt := range amounts {
		if amt == nil || amt.Sign() <= 0 {
			return fmt.Errorf("%w: index %d", ErrInvalidAmount, i)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	task := &Task{
		ID:         id,
		ResultHash: resultHash,
		Timestamp:  l.now(),
		Payouts:    make([]Payout, len(investors)),
	}
	for i := range investors {
		task.Payouts[i] = Payout{
			Investor: investors[i],
			Amount:   new(big.Int).Set(amounts[i]),
		}
	}

	if err := l.store.PutTask(task); err != nil {
		return err
	}

	if l.sink != nil {
		l.sink.PayoutsProcessed(PayoutsProcessed{
			TaskID:     id,
			Investors:  append([]investor.Address(nil), investors...),
			Amounts:    copyAmounts(amounts),
			ResultHash: resultHash,
			Timestamp:  task.Timestamp,
		})
	}
	return nil
}

// Claim transitions the caller's payout entry for the task from claimable
// to claimed and disburses the stored amount. The flip and the transfer
// are one atomic unit: a failed transfer reverts the flip, so an entry can
// never be claimed-but-unpaid. Returns the disbursed amount.
//
// The caller identity comes from the invocation context only — there is no
// way to claim on behalf of another address.
func (l *Ledger) Claim(id TaskID, caller investor.Address) (*big.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	task, err := l.store.GetTask(id)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range task.Payouts {
		if task.Payouts[i].Investor == caller {
			if task.Payouts[i].Claimed {
				return nil, fmt.Errorf("%w: already claimed by %s", ErrNoDividend, caller)
			}
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s has no entry in task", ErrNoDividend, caller)
	}

	amount := new(big.Int).Set(task.Payouts[idx].Amount)

	// Mark claimed first, transfer after, revert on transfer failure.
	task.Payouts[idx].Claimed = true
	if err := l.store.UpdateTask(task); err != nil {
		return nil, err
	}

	if err := l.transfer(caller, amount); err != nil {
		task.Payouts[idx].Claimed = false
		if rbErr := l.store.UpdateTask(task); rbErr != nil {
			return nil, fmt.Errorf("transfer failed (%w) and rollback failed: %w", err, rbErr)
		}
		return nil, fmt.Errorf("claim transfer: %w", err)
	}

	if l.sink != nil {
		l.sink.DividendClaimed(DividendClaimed{
			Investor:  caller,
			TaskID:    id,
			Amount:    amount,
			Timestamp: l.now(),
		})
	}
	return amount, nil
}

// InvestorTasks returns the IDs of every task holding a payout entry for
// the address.
func (l *Ledger) InvestorTasks(addr investor.Address) ([]TaskID, error) {
	return l.store.TasksByInvestor(addr)
}

// Payouts returns the stored payout table for a task.
func (l *Ledger) Payouts(id TaskID) ([]Payout, error) {
	task, err := l.store.GetTask(id)
	if err != nil {
		return nil, err
	}
	return task.Payouts, nil
}

// TaskDetails returns the stored result hash and registration timestamp.
func (l *Ledger) TaskDetails(id TaskID) ([32]byte, int64, error) {
	task, err := l.store.GetTask(id)
	if err != nil {
		return [32]byte{}, 0, err
	}
	return task.ResultHash, task.Timestamp, nil
}

func copyAmounts(amounts []*big.Int) []*big.Int {
	out := make([]*big.Int, len(amounts))
	for i, a := range amounts {
		out[i] = new(big.Int).Set(a)
	}
	return out
}
