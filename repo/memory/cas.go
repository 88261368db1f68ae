// Package memory provides in-memory stores satisfying
// dispatcher.TransactionStore24/TransactionStore31, grounded on the
// teacher's map-plus-sync.RWMutex store/memory package.
package memory

import (
	"context"
	"sync"

	dispatcher "github.com/stellaranchor/action-dispatcher"
)

// CASStore is the canonical in-memory store: optimistic concurrency via
// the Transaction.Version field. Save fails with
// ErrVersionConflict if the stored row's version no longer matches the
// version the caller read. One CASStore instance is used per protocol.
type CASStore struct {
	mu   sync.RWMutex
	rows map[string]*dispatcher.Transaction
}

// NewCASStore creates an empty CAS-backed store.
func NewCASStore() *CASStore {
	return &CASStore{rows: make(map[string]*dispatcher.Transaction)}
}

// Lookup returns a copy of the stored transaction with the given id, or
// ErrNotFound.
func (s *CASStore) Lookup(_ context.Context, id string) (*dispatcher.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, dispatcher.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

// Save persists txn, rejecting the write with ErrVersionConflict if another
// save has happened since txn's Version was read. On success txn.Version is
// advanced to match the stored row.
func (s *CASStore) Save(_ context.Context, txn *dispatcher.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.rows[txn.ID]; ok && existing.Version != txn.Version {
		return dispatcher.ErrVersionConflict
	}

	cp := *txn
	cp.Version++
	s.rows[txn.ID] = &cp
	txn.Version = cp.Version
	return nil
}

// Seed inserts or overwrites a row directly, bypassing the CAS check. For
// test and fixture setup.
func (s *CASStore) Seed(txn *dispatcher.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *txn
	s.rows[txn.ID] = &cp
}
