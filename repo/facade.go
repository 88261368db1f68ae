// Package repo implements the repository facade: dispatching transaction
// lookups and saves to the store for the transaction's protocol.
package repo

import (
	"context"
	stderrors "errors"
	"fmt"

	dispatcher "github.com/stellaranchor/action-dispatcher"
)

// Facade satisfies action.Repository by consulting the SEP-24 store first,
// then the SEP-31 store, on lookup, and routing saves by the transaction's
// own Protocol field. The two stores are disjoint by construction (a given
// id belongs to exactly one).
type Facade struct {
	sep24 dispatcher.TransactionStore24
	sep31 dispatcher.TransactionStore31
}

// NewFacade constructs a Facade over the given per-protocol stores.
func NewFacade(sep24 dispatcher.TransactionStore24, sep31 dispatcher.TransactionStore31) *Facade {
	return &Facade{sep24: sep24, sep31: sep31}
}

// Lookup finds a transaction by id, trying the SEP-24 store then the SEP-31
// store.
func (f *Facade) Lookup(ctx context.Context, id string) (*dispatcher.Transaction, error) {
	txn, err := f.sep24.Lookup(ctx, id)
	if err == nil {
		return txn, nil
	}
	if !stderrors.Is(err, dispatcher.ErrNotFound) {
		return nil, err
	}
	return f.sep31.Lookup(ctx, id)
}

// Save persists txn to the store matching its Protocol field.
func (f *Facade) Save(ctx context.Context, txn *dispatcher.Transaction) error {
	switch txn.Protocol {
	case dispatcher.Protocol24:
		return f.sep24.Save(ctx, txn)
	case dispatcher.Protocol31:
		return f.sep31.Save(ctx, txn)
	default:
		return fmt.Errorf("repo: unknown protocol %q", txn.Protocol)
	}
}
