package action

import (
	"context"
	"encoding/json"

	dispatcher "github.com/stellaranchor/action-dispatcher"
	"github.com/stellaranchor/action-dispatcher/errors"
	"github.com/stellaranchor/action-dispatcher/validate"
)

// transactionError implements notify_transaction_error: any non-terminal
// status, either protocol, moves to error. Symmetric with
// notify_transaction_expired: both require a message.
type transactionError struct{}

// NewTransactionError constructs the notify_transaction_error handler.
func NewTransactionError() Handler {
	return &transactionError{}
}

func (h *transactionError) ActionType() ActionType { return ActionNotifyTransactionError }

func (h *transactionError) SupportedProtocols() ProtocolSet {
	return protocols(dispatcher.Protocol24, dispatcher.Protocol31)
}

func (h *transactionError) SupportedStatuses(txn *dispatcher.Transaction) StatusSet {
	if txn.Status.Terminal() {
		return statuses()
	}
	return statuses(txn.Status)
}

func (h *transactionError) DecodeParams(raw json.RawMessage) (dispatcher.Request, error) {
	return validate.TransactionError(raw)
}

func (h *transactionError) Validate(ctx context.Context, txn *dispatcher.Transaction, r dispatcher.Request) error {
	req := r.(*dispatcher.NotifyTransactionErrorRequest)
	if req.Message == "" {
		return errors.NewInvalidParams("message is required")
	}
	return nil
}

func (h *transactionError) NextStatus(ctx context.Context, txn *dispatcher.Transaction, r dispatcher.Request) (dispatcher.Status, error) {
	return dispatcher.StatusError, nil
}

func (h *transactionError) Mutate(ctx context.Context, txn *dispatcher.Transaction, r dispatcher.Request) error {
	req := r.(*dispatcher.NotifyTransactionErrorRequest)
	txn.Message = req.Message
	return nil
}
