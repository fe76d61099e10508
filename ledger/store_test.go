package ledger

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privestorg/libprivest-go/investor"
)

// Both store implementations must satisfy the same contract; every
// subtest below runs against each of them.
func runStoreTests(t *testing.T, open func(t *testing.T) Store) {
	makeTask := func(seed byte, investors ...investor.Address) *Task {
		task := &Task{
			ID:         makeTaskID(seed),
			ResultHash: [32]byte{seed},
			Timestamp:  1700000000,
		}
		for i, addr := range investors {
			task.Payouts = append(task.Payouts, Payout{
				Investor: addr,
				Amount:   big.NewInt(int64(i+1) * 100),
			})
		}
		return task
	}

	t.Run("put and get", func(t *testing.T) {
		s := open(t)
		task := makeTask(0x01, makeAddress(0xA1), makeAddress(0xA2))
		require.NoError(t, s.PutTask(task))

		got, err := s.GetTask(task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
		assert.Equal(t, task.ResultHash, got.ResultHash)
		assert.Equal(t, task.Timestamp, got.Timestamp)
		assert.Equal(t, task.Payouts, got.Payouts)
	})

	t.Run("duplicate put", func(t *testing.T) {
		s := open(t)
		task := makeTask(0x01, makeAddress(0xA1))
		require.NoError(t, s.PutTask(task))
		assert.ErrorIs(t, s.PutTask(task), ErrDuplicateTask)
	})

	t.Run("get missing", func(t *testing.T) {
		s := open(t)
		_, err := s.GetTask(makeTaskID(0x7F))
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("update persists claim flip", func(t *testing.T) {
		s := open(t)
		task := makeTask(0x01, makeAddress(0xA1))
		require.NoError(t, s.PutTask(task))

		task.Payouts[0].Claimed = true
		require.NoError(t, s.UpdateTask(task))

		got, err := s.GetTask(task.ID)
		require.NoError(t, err)
		assert.True(t, got.Payouts[0].Claimed)
	})

	t.Run("update missing", func(t *testing.T) {
		s := open(t)
		assert.ErrorIs(t, s.UpdateTask(makeTask(0x7F, makeAddress(0xA1))), ErrTaskNotFound)
	})

	t.Run("nil task", func(t *testing.T) {
		s := open(t)
		assert.ErrorIs(t, s.PutTask(nil), ErrNilParam)
		assert.ErrorIs(t, s.UpdateTask(nil), ErrNilParam)
	})

	t.Run("tasks by investor", func(t *testing.T) {
		s := open(t)
		shared := makeAddress(0xA1)
		require.NoError(t, s.PutTask(makeTask(0x01, shared, makeAddress(0xA2))))
		require.NoError(t, s.PutTask(makeTask(0x02, shared)))

		ids, err := s.TasksByInvestor(shared)
		require.NoError(t, err)
		assert.ElementsMatch(t, []TaskID{makeTaskID(0x01), makeTaskID(0x02)}, ids)

		ids, err = s.TasksByInvestor(makeAddress(0xFF))
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("list tasks", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.PutTask(makeTask(0x01, makeAddress(0xA1))))
		require.NoError(t, s.PutTask(makeTask(0x02, makeAddress(0xA2))))

		tasks, err := s.ListTasks()
		require.NoError(t, err)
		assert.Len(t, tasks, 2)
	})
}

func TestMemStore(t *testing.T) {
	runStoreTests(t, func(t *testing.T) Store {
		return NewMemStore()
	})
}

func TestBoltStore(t *testing.T) {
	runStoreTests(t, func(t *testing.T) Store {
		s, err := OpenBoltStore(filepath.Join(t.TempDir(), "ledger.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

// GetTask hands out private copies: mutating the result must not leak
// into subsequently read state.
func TestMemStore_GetReturnsCopy(t *testing.T) {
	s := NewMemStore()
	task := &Task{
		ID:      makeTaskID(0x01),
		Payouts: []Payout{{Investor: makeAddress(0xA1), Amount: big.NewInt(100)}},
	}
	require.NoError(t, s.PutTask(task))

	got, err := s.GetTask(task.ID)
	require.NoError(t, err)
	got.Payouts[0].Claimed = true
	got.Payouts[0].Amount.SetInt64(999)

	fresh, err := s.GetTask(task.ID)
	require.NoError(t, err)
	assert.False(t, fresh.Payouts[0].Claimed)
	assert.Equal(t, big.NewInt(100), fresh.Payouts[0].Amount)
}

// BoltStore state survives a close and reopen.
func TestBoltStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	s, err := OpenBoltStore(path)
	require.NoError(t, err)
	task := &Task{
		ID:         makeTaskID(0x01),
		ResultHash: [32]byte{0xCC},
		Payouts:    []Payout{{Investor: makeAddress(0xA1), Amount: big.NewInt(100)}},
	}
	require.NoError(t, s.PutTask(task))
	require.NoError(t, s.Close())

	s, err = OpenBoltStore(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ResultHash, got.ResultHash)
	assert.Equal(t, task.Payouts, got.Payouts)

	ids, err := s.TasksByInvestor(makeAddress(0xA1))
	require.NoError(t, err)
	assert.Equal(t, []TaskID{task.ID}, ids)
}
