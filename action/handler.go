// Package action implements the action-handler framework and the
// per-action state-transition handlers: the generic pre-/post-
// condition machinery shared by every action, and the SEP-24/SEP-31
// status transition rules.
package action

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	dispatcher "github.com/stellaranchor/action-dispatcher"
	"github.com/stellaranchor/action-dispatcher/errors"
)

// ActionType is a closed enum of action names an operator may invoke.
type ActionType string

const (
	ActionNotifyOnchainFundsReceived     ActionType = "notify_onchain_funds_received"
	ActionNotifyRefundInitiated          ActionType = "notify_refund_initiated"
	ActionNotifyRefundSent               ActionType = "notify_refund_sent"
	ActionNotifyTransactionExpired       ActionType = "notify_transaction_expired"
	ActionNotifyTransactionError         ActionType = "notify_transaction_error"
	ActionNotifyInteractiveFlowCompleted ActionType = "notify_interactive_flow_completed"
	ActionNotifyAmountsUpdated           ActionType = "notify_amounts_updated"
)

// ProtocolSet and StatusSet are small membership-test helpers built from
// variadic literals, used throughout the per-action handlers below.
type ProtocolSet map[dispatcher.Protocol]bool
type StatusSet map[dispatcher.Status]bool

func protocols(p ...dispatcher.Protocol) ProtocolSet {
	s := make(ProtocolSet, len(p))
	for _, v := range p {
		s[v] = true
	}
	return s
}

func statuses(st ...dispatcher.Status) StatusSet {
	s := make(StatusSet, len(st))
	for _, v := range st {
		s[v] = true
	}
	return s
}

// Handler is implemented once per action name. Protocol/kind dispatch
// inside a handler is a plain exhaustive switch over a sum type — there is
// no further per-protocol handler hierarchy.
type Handler interface {
	ActionType() ActionType
	SupportedProtocols() ProtocolSet
	SupportedStatuses(txn *dispatcher.Transaction) StatusSet
	DecodeParams(raw json.RawMessage) (dispatcher.Request, error)
	Validate(ctx context.Context, txn *dispatcher.Transaction, req dispatcher.Request) error
	NextStatus(ctx context.Context, txn *dispatcher.Transaction, req dispatcher.Request) (dispatcher.Status, error)
	Mutate(ctx context.Context, txn *dispatcher.Transaction, req dispatcher.Request) error
}

// Repository is the facade contract the dispatch skeleton needs: lookup by
// id and atomic save.
type Repository interface {
	Lookup(ctx context.Context, id string) (*dispatcher.Transaction, error)
	Save(ctx context.Context, txn *dispatcher.Transaction) error
}

// Clock returns the current instant; overridable in tests.
type Clock func() time.Time

// Handle runs the generic pre-/post-condition algorithm shared by every
// action. Any error before the save step aborts the call; no partial state
// persists. hooks may be nil.
func Handle(ctx context.Context, repo Repository, h Handler, raw json.RawMessage, now Clock, hooks *HookRegistry) (dispatcher.GetTransactionResponse, error) {
	if now == nil {
		now = time.Now
	}

	// Structural validation happens first, since it also yields the
	// transaction id needed for the lookup below.
	req, err := h.DecodeParams(raw)
	if err != nil {
		return dispatcher.GetTransactionResponse{}, err
	}

	// Lookup.
	txn, err := repo.Lookup(ctx, req.TxnID())
	if err != nil {
		if isNotFound(err) {
			return dispatcher.GetTransactionResponse{}, errors.NewNotFound("transaction not found")
		}
		return dispatcher.GetTransactionResponse{}, errors.NewInternal("failed to look up transaction", err)
	}

	// Protocol gate.
	if !h.SupportedProtocols()[txn.Protocol] {
		return dispatcher.GetTransactionResponse{}, gateError(h.ActionType(), txn)
	}

	// Status gate.
	if !h.SupportedStatuses(txn)[txn.Status] {
		return dispatcher.GetTransactionResponse{}, gateError(h.ActionType(), txn)
	}

	// Domain validation.
	if err := h.Validate(ctx, txn, req); err != nil {
		return dispatcher.GetTransactionResponse{}, err
	}

	// Compute next status.
	next, err := h.NextStatus(ctx, txn, req)
	if err != nil {
		return dispatcher.GetTransactionResponse{}, err
	}

	// Mutate in memory.
	if err := h.Mutate(ctx, txn, req); err != nil {
		return dispatcher.GetTransactionResponse{}, err
	}

	// Set status/updatedAt and save. Save is the last side effect of the
	// invocation.
	txn.Status = next
	txn.UpdatedAt = now()
	if err := repo.Save(ctx, txn); err != nil {
		if isConflict(err) {
			return dispatcher.GetTransactionResponse{}, errors.NewConflict("transaction was concurrently modified")
		}
		return dispatcher.GetTransactionResponse{}, errors.NewInternal("failed to save transaction", err)
	}

	if hooks != nil {
		hooks.Trigger(eventFor(h.ActionType()), txn)
		hooks.Trigger(HookTransactionStatusChanged, txn)
	}

	return dispatcher.Project(txn), nil
}

func gateError(action ActionType, txn *dispatcher.Transaction) error {
	return errors.NewInvalidRequest(fmt.Sprintf(
		"Action[%s] is not supported for status[%s], kind[%s] and protocol[%s]",
		action, txn.Status, txn.Kind, txn.Protocol,
	))
}

func isNotFound(err error) bool {
	return stderrors.Is(err, dispatcher.ErrNotFound)
}

func isConflict(err error) bool {
	return stderrors.Is(err, dispatcher.ErrVersionConflict)
}
