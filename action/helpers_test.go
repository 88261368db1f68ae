package action

import (
	"context"

	dispatcher "github.com/stellaranchor/action-dispatcher"
)

// fakeAssets is a minimal AssetService fixture keyed by asset code.
type fakeAssets map[string]int

func (f fakeAssets) Precision(_ context.Context, asset string) (int, bool) {
	p, ok := f[asset]
	return p, ok
}

// fakeRepo is an in-memory Repository fixture for handler tests. It is not
// the production store (see repo/memory); it exists only so handler tests
// don't depend on a persistence implementation.
type fakeRepo struct {
	byID map[string]*dispatcher.Transaction
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*dispatcher.Transaction)}
}

func (r *fakeRepo) put(txn *dispatcher.Transaction) {
	r.byID[txn.ID] = txn
}

func (r *fakeRepo) Lookup(_ context.Context, id string) (*dispatcher.Transaction, error) {
	txn, ok := r.byID[id]
	if !ok {
		return nil, dispatcher.ErrNotFound
	}
	cp := *txn
	return &cp, nil
}

func (r *fakeRepo) Save(_ context.Context, txn *dispatcher.Transaction) error {
	r.byID[txn.ID] = txn
	return nil
}
