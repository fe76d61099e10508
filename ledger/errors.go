package ledger

import "errors"

var (
	// ErrDuplicateTask indicates a task with this ID is already
	// registered. Registration is one-way; the stored result is never
	// overwritten.
	ErrDuplicateTask = errors.New("ledger: duplicate task")

	// ErrTaskNotFound indicates no task with this ID is registered.
	ErrTaskNotFound = errors.New("ledger: task not found")

	// ErrNoDividend indicates the caller has no payout entry for the
	// task, or the entry is already claimed.
	ErrNoDividend = errors.New("ledger: no dividend available")

	// ErrLengthMismatch indicates the investor and amount arrays differ
	// in length or are empty.
	ErrLengthMismatch = errors.New("ledger: investor/amount length mismatch")

	// ErrInvalidAddress indicates a zero investor address in a
	// registration.
	ErrInvalidAddress = errors.New("ledger: invalid investor address")

	// ErrInvalidAmount indicates a nil or non-positive payout amount.
	ErrInvalidAmount = errors.New("ledger: invalid payout amount")

	// ErrInsufficientFunds indicates the pooled balance cannot cover a
	// claim transfer. The claim is rolled back and stays claimable.
	ErrInsufficientFunds = errors.New("ledger: insufficient pooled funds")

	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("ledger: required parameter is nil")
)
