package ledger

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/privestorg/libprivest-go/investor"
)

var (
	bucketTasks         = []byte("tasks")
	bucketInvestorTasks = []byte("investor_tasks")
)

// BoltStore persists tasks in a bbolt database. Tasks are gob-encoded and
// keyed by task ID; a secondary bucket indexes tasks by investor address
// using composite address+taskID keys for prefix scanning.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("ledger: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketTasks, bucketInvestorTasks} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("boltstore: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// PutTask stores a new task. The duplicate check happens inside the same
// write transaction as the insert.
func (s *BoltStore) PutTask(task *Task) error {
	if task == nil {
		return fmt.Errorf("%w: task", ErrNilParam)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		tb := tx.Bucket(bucketTasks)
		if tb.Get(task.ID[:]) != nil {
			return ErrDuplicateTask
		}

		data, err := encodeGob(task)
		if err != nil {
			return fmt.Errorf("encode task: %w", err)
		}
		if err := tb.Put(task.ID[:], data); err != nil {
			return fmt.Errorf("boltstore: put task: %w", err)
		}

		ib := tx.Bucket(bucketInvestorTasks)
		for i := range task.Payouts {
			if err := ib.Put(investorKey(task.Payouts[i].Investor, task.ID), []byte{}); err != nil {
				return fmt.Errorf("boltstore: put investor index: %w", err)
			}
		}
		return nil
	})
}

// GetTask retrieves a task by ID.
func (s *BoltStore) GetTask(id TaskID) (*Task, error) {
	var task Task
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketTasks).Get(id[:])
		if data == nil {
			return ErrTaskNotFound
		}
		if err := decodeGob(data, &task); err != nil {
			return fmt.Errorf("boltstore: decode task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask overwrites an existing task entry (claim-state flips).
func (s *BoltStore) UpdateTask(task *Task) error {
	if task == nil {
		return fmt.Errorf("%w: task", ErrNilParam)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		tb := tx.Bucket(bucketTasks)
		if tb.Get(task.ID[:]) == nil {
			return ErrTaskNotFound
		}
		data, err := encodeGob(task)
		if err != nil {
			return fmt.Errorf("encode task: %w", err)
		}
		if err := tb.Put(task.ID[:], data); err != nil {
			return fmt.Errorf("boltstore: update task: %w", err)
		}
		return nil
	})
}

// TasksByInvestor returns the IDs of every task holding a payout entry
// for the address.
func (s *BoltStore) TasksByInvestor(addr investor.Address) ([]TaskID, error) {
	var ids []TaskID
	err := s.db.View(func(tx *bbolt.Tx) error {
		prefix := addr.Bytes()
		c := tx.Bucket(bucketInvestorTasks).Cursor()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			var id TaskID
			copy(id[:], k[len(prefix):])
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("boltstore: tasks by investor: %w", err)
	}
	return ids, nil
}

// ListTasks returns all stored tasks.
func (s *BoltStore) ListTasks() ([]*Task, error) {
	var tasks []*Task
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketTasks).ForEach(func(k, v []byte) error {
			var task Task
			if err := decodeGob(v, &task); err != nil {
				return fmt.Errorf("boltstore: decode task in list: %w", err)
			}
			tasks = append(tasks, &task)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("boltstore: list tasks: %w", err)
	}
	return tasks, nil
}

// investorKey builds the composite address+taskID index key.
func investorKey(addr investor.Address, id TaskID) []byte {
	k := make([]byte, investor.AddressSize+TaskIDSize)
	copy(k, addr.Bytes())
	copy(k[investor.AddressSize:], id[:])
	return k
}

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
