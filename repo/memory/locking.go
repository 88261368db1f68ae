package memory

import (
	"context"
	"sync"

	dispatcher "github.com/stellaranchor/action-dispatcher"
)

// LockingStore is the alternate in-memory store: pessimistic per-id
// locking via a map of mutexes. Lookup acquires the per-id lock; Save
// releases it. This demonstrates the pessimistic
// alternative for contrast with CASStore, which is the store cmd/dispatcher
// actually wires up: a handler invocation that returns an error between
// Lookup and Save (failed gate or validation) never calls Save, so the lock
// for that id is never released. CASStore has no such hazard and is the
// one production code should use.
type LockingStore struct {
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	rowsMu sync.Mutex
	rows   map[string]*dispatcher.Transaction
}

// NewLockingStore creates an empty lock-backed store.
func NewLockingStore() *LockingStore {
	return &LockingStore{
		locks: make(map[string]*sync.Mutex),
		rows:  make(map[string]*dispatcher.Transaction),
	}
}

func (s *LockingStore) lockFor(id string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	mu, ok := s.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[id] = mu
	}
	return mu
}

// Lookup acquires id's lock and returns a copy of the stored transaction, or
// ErrNotFound. The lock is held until Save (or never released if the caller
// abandons the sequence; see type doc).
func (s *LockingStore) Lookup(_ context.Context, id string) (*dispatcher.Transaction, error) {
	s.lockFor(id).Lock()

	s.rowsMu.Lock()
	row, ok := s.rows[id]
	var cp dispatcher.Transaction
	if ok {
		cp = *row
	}
	s.rowsMu.Unlock()

	if !ok {
		s.lockFor(id).Unlock()
		return nil, dispatcher.ErrNotFound
	}
	return &cp, nil
}

// Save persists txn and releases the lock acquired by the matching Lookup.
func (s *LockingStore) Save(_ context.Context, txn *dispatcher.Transaction) error {
	s.rowsMu.Lock()
	cp := *txn
	s.rows[txn.ID] = &cp
	s.rowsMu.Unlock()

	s.lockFor(txn.ID).Unlock()
	return nil
}

// Seed inserts or overwrites a row directly, bypassing locking. For test and
// fixture setup.
func (s *LockingStore) Seed(txn *dispatcher.Transaction) {
	s.rowsMu.Lock()
	defer s.rowsMu.Unlock()
	cp := *txn
	s.rows[txn.ID] = &cp
}
