package ledger

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/privestorg/libprivest-go/investor"
)

// Store persists registered tasks. Implementations must make PutTask's
// duplicate check and write atomic with respect to each other.
type Store interface {
	// PutTask stores a new task. Fails with ErrDuplicateTask if the ID
	// already exists.
	PutTask(task *Task) error

	// GetTask retrieves a task by ID. The returned value is a private
	// copy the caller may mutate.
	GetTask(id TaskID) (*Task, error)

	// UpdateTask overwrites an existing task (claim-state flips). Fails
	// with ErrTaskNotFound if the ID does not exist.
	UpdateTask(task *Task) error

	// TasksByInvestor returns the IDs of every task holding a payout
	// entry for the address.
	TasksByInvestor(addr investor.Address) ([]TaskID, error)

	// ListTasks returns all stored tasks (for backup/export).
	ListTasks() ([]*Task, error)
}

// MemStore is an in-memory Store for testing and ephemeral ledgers.
type MemStore struct {
	mu         sync.RWMutex
	tasks      map[TaskID]*Task
	byInvestor map[investor.Address][]TaskID
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates a new in-memory task store.
func NewMemStore() *MemStore {
	return &MemStore{
		tasks:      make(map[TaskID]*Task),
		byInvestor: make(map[investor.Address][]TaskID),
	}
}

// PutTask stores a new task.
func (s *MemStore) PutTask(task *Task) error {
	if task == nil {
		return fmt.Errorf("%w: task", ErrNilParam)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.ID]; exists {
		return ErrDuplicateTask
	}

	s.tasks[task.ID] = copyTask(task)
	for i := range task.Payouts {
		addr := task.Payouts[i].Investor
		s.byInvestor[addr] = append(s.byInvestor[addr], task.ID)
	}
	return nil
}

// GetTask retrieves a task by ID.
func (s *MemStore) GetTask(id TaskID) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return copyTask(task), nil
}

// UpdateTask overwrites an existing task.
func (s *MemStore) UpdateTask(task *Task) error {
	if task == nil {
		return fmt.Errorf("%w: task", ErrNilParam)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[task.ID]; !ok {
		return ErrTaskNotFound
	}
	s.tasks[task.ID] = copyTask(task)
	return nil
}

// TasksByInvestor returns the IDs of tasks touching the address, in
// registration order.
func (s *MemStore) TasksByInvestor(addr investor.Address) ([]TaskID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byInvestor[addr]
	if len(ids) == 0 {
		return nil, nil
	}
	out := make([]TaskID, len(ids))
	copy(out, ids)
	return out, nil
}

// ListTasks returns all stored tasks.
func (s *MemStore) ListTasks() ([]*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		out = append(out, copyTask(task))
	}
	return out, nil
}

// copyTask deep-copies a task so store-internal state never aliases
// caller-visible values.
func copyTask(t *Task) *Task {
	out := &Task{
		ID:         t.ID,
		ResultHash: t.ResultHash,
		Timestamp:  t.Timestamp,
		Payouts:    make([]Payout, len(t.Payouts)),
	}
	for i := range t.Payouts {
		out.Payouts[i] = Payout{
			Investor: t.Payouts[i].Investor,
			Amount:   new(big.Int).Set(t.Payouts[i].Amount),
			Claimed:  t.Payouts[i].Claimed,
		}
	}
	return out
}
