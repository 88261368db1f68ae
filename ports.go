package dispatcher

import (
	"context"
	"errors"
)

// TransactionStore24 persists SEP-24 transactions. It is an opaque
// key/value-by-id store with atomic save; implementations live outside
// this package (e.g. package repo/memory).
type TransactionStore24 interface {
	Lookup(ctx context.Context, id string) (*Transaction, error)
	Save(ctx context.Context, txn *Transaction) error
}

// TransactionStore31 persists SEP-31 transactions, disjoint from
// TransactionStore24 by construction.
type TransactionStore31 interface {
	Lookup(ctx context.Context, id string) (*Transaction, error)
	Save(ctx context.Context, txn *Transaction) error
}

// ErrNotFound is returned by store Lookup methods when no row matches the
// requested id. Callers should compare with errors.Is.
var ErrNotFound = errors.New("transaction not found")

// ErrVersionConflict is returned by Save when an optimistic-concurrency
// version check fails.
var ErrVersionConflict = errors.New("transaction version conflict")

// AssetService resolves asset codes against the anchor's catalog and
// reports their decimal precision (number of fractional digits permitted).
type AssetService interface {
	// Precision returns the fractional-digit precision for asset, and false
	// if asset is not supported.
	Precision(ctx context.Context, asset string) (int, bool)
}

// Horizon is the oracle for on-chain facts. The core only uses it to fetch
// confirmation time for a Stellar transaction hash; it never drives ledger
// state.
type Horizon interface {
	ConfirmationTime(ctx context.Context, stellarTransactionID string) (int64, error)
}
