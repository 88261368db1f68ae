// Package validate implements structural validation of RPC request
// payloads (presence, types) ahead of any domain-level validation
// (amount/asset checks, refund accounting, per-action rules).
package validate

import (
	"encoding/json"
	"strings"

	dispatcher "github.com/stellaranchor/action-dispatcher"
	"github.com/stellaranchor/action-dispatcher/errors"
)

func decode(raw json.RawMessage, into any) error {
	if len(raw) == 0 {
		return errors.NewInvalidParams("params is required")
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return errors.NewInvalidParams("params is malformed")
	}
	return nil
}

func requireNonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewInvalidParams(field + " is required")
	}
	return nil
}

func requireMoney(field string, m *dispatcher.Money) error {
	if m == nil {
		return errors.NewInvalidParams(field + " is required")
	}
	if strings.TrimSpace(m.Amount) == "" {
		return errors.NewInvalidParams(field + ".amount is required")
	}
	if strings.TrimSpace(m.Asset) == "" {
		return errors.NewInvalidParams(field + ".asset is required")
	}
	return nil
}

// OnchainFundsReceived structurally validates notify_onchain_funds_received
// params: transaction_id is required; the amount triple (amount_in,
// amount_out, amount_fee) must be all present or all absent.
func OnchainFundsReceived(raw json.RawMessage) (*dispatcher.NotifyOnchainFundsReceivedRequest, error) {
	var req dispatcher.NotifyOnchainFundsReceivedRequest
	if err := decode(raw, &req); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("transaction_id", req.TransactionID); err != nil {
		return nil, err
	}

	present := 0
	if req.AmountIn != nil {
		present++
	}
	if req.AmountOut != nil {
		present++
	}
	if req.AmountFee != nil {
		present++
	}
	if present != 0 && present != 3 {
		return nil, errors.NewInvalidParams("All or none of the amount_in, amount_out, and amount_fee should be set")
	}
	if present == 3 {
		if err := requireMoney("amount_in", req.AmountIn); err != nil {
			return nil, err
		}
		if err := requireMoney("amount_out", req.AmountOut); err != nil {
			return nil, err
		}
		if err := requireMoney("amount_fee", req.AmountFee); err != nil {
			return nil, err
		}
	}
	return &req, nil
}

// RefundInitiated structurally validates notify_refund_initiated params.
func RefundInitiated(raw json.RawMessage) (*dispatcher.NotifyRefundInitiatedRequest, error) {
	var req dispatcher.NotifyRefundInitiatedRequest
	if err := decode(raw, &req); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("transaction_id", req.TransactionID); err != nil {
		return nil, err
	}
	if req.Refund == nil {
		return nil, errors.NewInvalidParams("refund is required")
	}
	if err := requireNonEmpty("refund.id", req.Refund.ID); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("refund.amount", req.Refund.Amount); err != nil {
		return nil, err
	}
	return &req, nil
}

// RefundSent structurally validates notify_refund_sent params. Unlike
// RefundInitiated, refund is optional at this layer — whether it is
// required depends on the transaction's current status, so that check
// belongs to domain validation.
func RefundSent(raw json.RawMessage) (*dispatcher.NotifyRefundSentRequest, error) {
	var req dispatcher.NotifyRefundSentRequest
	if err := decode(raw, &req); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("transaction_id", req.TransactionID); err != nil {
		return nil, err
	}
	if req.Refund != nil {
		if err := requireNonEmpty("refund.id", req.Refund.ID); err != nil {
			return nil, err
		}
		if err := requireNonEmpty("refund.amount", req.Refund.Amount); err != nil {
			return nil, err
		}
	}
	return &req, nil
}

// TransactionExpired structurally validates notify_transaction_expired
// params.
func TransactionExpired(raw json.RawMessage) (*dispatcher.NotifyTransactionExpiredRequest, error) {
	var req dispatcher.NotifyTransactionExpiredRequest
	if err := decode(raw, &req); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("transaction_id", req.TransactionID); err != nil {
		return nil, err
	}
	return &req, nil
}

// TransactionError structurally validates notify_transaction_error params.
func TransactionError(raw json.RawMessage) (*dispatcher.NotifyTransactionErrorRequest, error) {
	var req dispatcher.NotifyTransactionErrorRequest
	if err := decode(raw, &req); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("transaction_id", req.TransactionID); err != nil {
		return nil, err
	}
	return &req, nil
}

// InteractiveFlowCompleted structurally validates
// notify_interactive_flow_completed params.
func InteractiveFlowCompleted(raw json.RawMessage) (*dispatcher.NotifyInteractiveFlowCompletedRequest, error) {
	var req dispatcher.NotifyInteractiveFlowCompletedRequest
	if err := decode(raw, &req); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("transaction_id", req.TransactionID); err != nil {
		return nil, err
	}
	return &req, nil
}

// AmountsUpdated structurally validates notify_amounts_updated params.
func AmountsUpdated(raw json.RawMessage) (*dispatcher.NotifyAmountsUpdatedRequest, error) {
	var req dispatcher.NotifyAmountsUpdatedRequest
	if err := decode(raw, &req); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("transaction_id", req.TransactionID); err != nil {
		return nil, err
	}
	if err := requireMoney("amount_in", &req.AmountIn); err != nil {
		return nil, err
	}
	if err := requireMoney("amount_out", &req.AmountOut); err != nil {
		return nil, err
	}
	if err := requireMoney("amount_fee", &req.AmountFee); err != nil {
		return nil, err
	}
	return &req, nil
}
