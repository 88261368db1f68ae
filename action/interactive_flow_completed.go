package action

import (
	"context"
	"encoding/json"

	dispatcher "github.com/stellaranchor/action-dispatcher"
	"github.com/stellaranchor/action-dispatcher/validate"
)

// interactiveFlowCompleted implements notify_interactive_flow_completed
// (SEP-24 only): the interactive webview has finished collecting whatever
// it needed from the user, moving deposits on to waiting for the on-chain
// transfer and withdrawals on to the anchor completing the Stellar payment.
type interactiveFlowCompleted struct{}

// NewInteractiveFlowCompleted constructs the
// notify_interactive_flow_completed handler.
func NewInteractiveFlowCompleted() Handler {
	return &interactiveFlowCompleted{}
}

func (h *interactiveFlowCompleted) ActionType() ActionType {
	return ActionNotifyInteractiveFlowCompleted
}

func (h *interactiveFlowCompleted) SupportedProtocols() ProtocolSet {
	return protocols(dispatcher.Protocol24)
}

func (h *interactiveFlowCompleted) SupportedStatuses(txn *dispatcher.Transaction) StatusSet {
	if txn.Kind != dispatcher.KindDeposit && txn.Kind != dispatcher.KindWithdrawal {
		return statuses()
	}
	return statuses(dispatcher.StatusIncomplete)
}

func (h *interactiveFlowCompleted) DecodeParams(raw json.RawMessage) (dispatcher.Request, error) {
	return validate.InteractiveFlowCompleted(raw)
}

func (h *interactiveFlowCompleted) Validate(ctx context.Context, txn *dispatcher.Transaction, r dispatcher.Request) error {
	return nil
}

func (h *interactiveFlowCompleted) NextStatus(ctx context.Context, txn *dispatcher.Transaction, r dispatcher.Request) (dispatcher.Status, error) {
	if txn.Kind == dispatcher.KindWithdrawal {
		return dispatcher.StatusPendingAnchor, nil
	}
	return dispatcher.StatusPendingUserTransferStart, nil
}

func (h *interactiveFlowCompleted) Mutate(ctx context.Context, txn *dispatcher.Transaction, r dispatcher.Request) error {
	return nil
}
