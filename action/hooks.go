package action

import (
	"sync"

	dispatcher "github.com/stellaranchor/action-dispatcher"
)

// HookEvent names a lifecycle event fired after a successful action
// dispatch. HookRegistry gives the ambient stack a place to hang
// structured logging or downstream notification without the core
// dispatch logic depending on it.
type HookEvent string

const (
	HookOnchainFundsReceived     HookEvent = "notify_onchain_funds_received"
	HookRefundInitiated          HookEvent = "notify_refund_initiated"
	HookRefundSent               HookEvent = "notify_refund_sent"
	HookTransactionExpired       HookEvent = "notify_transaction_expired"
	HookTransactionError         HookEvent = "notify_transaction_error"
	HookInteractiveFlowCompleted HookEvent = "notify_interactive_flow_completed"
	HookAmountsUpdated           HookEvent = "notify_amounts_updated"
	HookTransactionStatusChanged HookEvent = "transaction:status_changed"
)

// HookRegistry manages lifecycle event handlers fired after a transaction
// is saved. Handlers execute sequentially in registration order; the
// registry is safe for concurrent registration and triggering.
type HookRegistry struct {
	handlers map[HookEvent][]func(*dispatcher.Transaction)
	mu       sync.RWMutex
}

// NewHookRegistry creates an empty lifecycle hook registry.
func NewHookRegistry() *HookRegistry {
	return &HookRegistry{handlers: make(map[HookEvent][]func(*dispatcher.Transaction))}
}

// On registers a handler for a lifecycle event.
func (r *HookRegistry) On(event HookEvent, handler func(*dispatcher.Transaction)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[event] = append(r.handlers[event], handler)
}

// Trigger executes all handlers registered for event, in registration
// order, passing the transaction that triggered it.
func (r *HookRegistry) Trigger(event HookEvent, txn *dispatcher.Transaction) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, handler := range r.handlers[event] {
		handler(txn)
	}
}

func eventFor(action ActionType) HookEvent {
	switch action {
	case ActionNotifyOnchainFundsReceived:
		return HookOnchainFundsReceived
	case ActionNotifyRefundInitiated:
		return HookRefundInitiated
	case ActionNotifyRefundSent:
		return HookRefundSent
	case ActionNotifyTransactionExpired:
		return HookTransactionExpired
	case ActionNotifyTransactionError:
		return HookTransactionError
	case ActionNotifyInteractiveFlowCompleted:
		return HookInteractiveFlowCompleted
	case ActionNotifyAmountsUpdated:
		return HookAmountsUpdated
	default:
		return HookTransactionStatusChanged
	}
}
