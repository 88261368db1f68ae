package action

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	dispatcher "github.com/stellaranchor/action-dispatcher"
	"github.com/stellaranchor/action-dispatcher/errors"
	"github.com/stellaranchor/action-dispatcher/money"
	"github.com/stellaranchor/action-dispatcher/refunds"
	"github.com/stellaranchor/action-dispatcher/validate"
)

// refundInitiated implements notify_refund_initiated (SEP-24 deposits
// only).
type refundInitiated struct {
	assets dispatcher.AssetService
}

// NewRefundInitiated constructs the notify_refund_initiated handler.
func NewRefundInitiated(assets dispatcher.AssetService) Handler {
	return &refundInitiated{assets: assets}
}

func (h *refundInitiated) ActionType() ActionType { return ActionNotifyRefundInitiated }

func (h *refundInitiated) SupportedProtocols() ProtocolSet {
	return protocols(dispatcher.Protocol24)
}

func (h *refundInitiated) SupportedStatuses(txn *dispatcher.Transaction) StatusSet {
	if txn.Kind != dispatcher.KindDeposit || txn.TransferReceivedAt == nil {
		return statuses()
	}
	return statuses(dispatcher.StatusPendingAnchor)
}

func (h *refundInitiated) DecodeParams(raw json.RawMessage) (dispatcher.Request, error) {
	return validate.RefundInitiated(raw)
}

func (h *refundInitiated) req(r dispatcher.Request) *dispatcher.NotifyRefundInitiatedRequest {
	return r.(*dispatcher.NotifyRefundInitiatedRequest)
}

func (h *refundInitiated) Validate(ctx context.Context, txn *dispatcher.Transaction, r dispatcher.Request) error {
	req := h.req(r)

	if _, err := money.ValidateAmountAsset(ctx, "refund", dispatcher.Money{Amount: req.Refund.Amount, Asset: txn.AmountInAsset}, h.assets, false); err != nil {
		return err
	}
	if _, err := money.ValidateAmountAsset(ctx, "refund", dispatcher.Money{Amount: req.Refund.AmountFee, Asset: txn.AmountInAsset}, h.assets, true); err != nil {
		return err
	}

	precision, _ := h.assets.Precision(ctx, txn.AmountInAsset)
	projected := refunds.UpsertPayment(txn.Refunds, dispatcher.RefundPayment{
		ID: req.Refund.ID, Amount: req.Refund.Amount, Fee: req.Refund.AmountFee,
	})
	total := refunds.TotalRefunded(projected, int32(precision))
	amountIn, err := decimal.NewFromString(txn.AmountIn)
	if err != nil {
		return errors.NewInternal("stored amount_in is not a valid decimal", err)
	}
	if total.GreaterThan(amountIn) {
		return errors.NewInvalidParams("Refund amount exceeds amount_in")
	}

	return nil
}

func (h *refundInitiated) NextStatus(ctx context.Context, txn *dispatcher.Transaction, r dispatcher.Request) (dispatcher.Status, error) {
	return dispatcher.StatusPendingExternal, nil
}

func (h *refundInitiated) Mutate(ctx context.Context, txn *dispatcher.Transaction, r dispatcher.Request) error {
	req := h.req(r)
	precision, _ := h.assets.Precision(ctx, txn.AmountInAsset)

	fresh := refunds.UpsertPayment(txn.Refunds, dispatcher.RefundPayment{
		ID: req.Refund.ID, Amount: req.Refund.Amount, Fee: req.Refund.AmountFee,
	})
	txn.Refunds = refunds.Recalculate(fresh, int32(precision))
	return nil
}
