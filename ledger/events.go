package ledger

import (
	"math/big"

	"github.com/privestorg/libprivest-go/investor"
)

// PayoutsProcessed is emitted once per successful registration, carrying
// the full commitment for off-ledger observers and indexers. Its shape is
// part of the external contract.
type PayoutsProcessed struct {
	TaskID     TaskID
	Investors  []investor.Address
	Amounts    []*big.Int
	ResultHash [32]byte
	Timestamp  int64
}

// DividendClaimed is emitted once per successful claim.
type DividendClaimed struct {
	Investor  investor.Address
	TaskID    TaskID
	Amount    *big.Int
	Timestamp int64
}

// EventSink receives ledger events. Sinks are invoked synchronously after
// the state change commits and must not call back into the ledger.
type EventSink interface {
	PayoutsProcessed(ev PayoutsProcessed)
	DividendClaimed(ev DividendClaimed)
}
