package ledger

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/privestorg/libprivest-go/investor"
)

// Pool holds a single balance of native currency backing claims. Funding
// the pool is the operator's responsibility; registration never checks it,
// so an under-funded pool surfaces only when a claim transfer fails.
type Pool struct {
	mu      sync.Mutex
	balance *big.Int
	paid    map[investor.Address]*big.Int
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{
		balance: new(big.Int),
		paid:    make(map[investor.Address]*big.Int),
	}
}

// Fund adds amount to the pooled balance.
func (p *Pool) Fund(amount *big.Int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.balance.Add(p.balance, amount)
}

// Balance returns the current pooled balance.
func (p *Pool) Balance() *big.Int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return new(big.Int).Set(p.balance)
}

// PaidTo returns the total amount disbursed to an address.
func (p *Pool) PaidTo(addr investor.Address) *big.Int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if paid, ok := p.paid[addr]; ok {
		return new(big.Int).Set(paid)
	}
	return new(big.Int)
}

// Transfer disburses amount to an address. Fails with
// ErrInsufficientFunds when the balance cannot cover it, leaving the pool
// unchanged. Satisfies the ledger's Transfer seam.
func (p *Pool) Transfer(to investor.Address, amount *big.Int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.balance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: balance %s, need %s", ErrInsufficientFunds, p.balance, amount)
	}
	p.balance.Sub(p.balance, amount)

	if _, ok := p.paid[to]; !ok {
		p.paid[to] = new(big.Int)
	}
	p.paid[to].Add(p.paid[to], amount)
	return nil
}
