package action

import (
	"time"

	dispatcher "github.com/stellaranchor/action-dispatcher"
)

// Registry maps action names to their handler, the dispatch table driving
// the JSON-RPC transport's method lookup.
type Registry map[ActionType]Handler

// NewRegistry builds the registry of every action handler, wired against
// the given asset catalog and clock. clock is passed through to
// handlers that stamp on-chain receipt times; a nil clock defaults to
// time.Now.
func NewRegistry(assets dispatcher.AssetService, clock Clock) Registry {
	if clock == nil {
		clock = time.Now
	}
	handlers := []Handler{
		NewOnchainFundsReceived(assets, clock),
		NewRefundInitiated(assets),
		NewRefundSent(assets),
		NewTransactionExpired(),
		NewTransactionError(),
		NewInteractiveFlowCompleted(),
		NewAmountsUpdated(assets),
	}

	reg := make(Registry, len(handlers))
	for _, h := range handlers {
		reg[h.ActionType()] = h
	}
	return reg
}

// Lookup returns the handler registered for name, and false if no action by
// that name exists.
func (r Registry) Lookup(name string) (Handler, bool) {
	h, ok := r[ActionType(name)]
	return h, ok
}
