package action

import (
	"context"
	"encoding/json"

	dispatcher "github.com/stellaranchor/action-dispatcher"
	"github.com/stellaranchor/action-dispatcher/errors"
	"github.com/stellaranchor/action-dispatcher/validate"
)

// transactionExpired implements notify_transaction_expired. It applies to
// both protocols: any non-terminal status may be marked expired.
type transactionExpired struct{}

// NewTransactionExpired constructs the notify_transaction_expired handler.
func NewTransactionExpired() Handler {
	return &transactionExpired{}
}

func (h *transactionExpired) ActionType() ActionType { return ActionNotifyTransactionExpired }

func (h *transactionExpired) SupportedProtocols() ProtocolSet {
	return protocols(dispatcher.Protocol24, dispatcher.Protocol31)
}

func (h *transactionExpired) SupportedStatuses(txn *dispatcher.Transaction) StatusSet {
	if txn.Status.Terminal() {
		return statuses()
	}
	return statuses(txn.Status)
}

func (h *transactionExpired) DecodeParams(raw json.RawMessage) (dispatcher.Request, error) {
	return validate.TransactionExpired(raw)
}

func (h *transactionExpired) Validate(ctx context.Context, txn *dispatcher.Transaction, r dispatcher.Request) error {
	req := r.(*dispatcher.NotifyTransactionExpiredRequest)
	if req.Message == "" {
		return errors.NewInvalidParams("message is required")
	}
	return nil
}

func (h *transactionExpired) NextStatus(ctx context.Context, txn *dispatcher.Transaction, r dispatcher.Request) (dispatcher.Status, error) {
	return dispatcher.StatusExpired, nil
}

func (h *transactionExpired) Mutate(ctx context.Context, txn *dispatcher.Transaction, r dispatcher.Request) error {
	req := r.(*dispatcher.NotifyTransactionExpiredRequest)
	txn.Message = req.Message
	return nil
}
