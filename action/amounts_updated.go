package action

import (
	"context"
	"encoding/json"

	dispatcher "github.com/stellaranchor/action-dispatcher"
	"github.com/stellaranchor/action-dispatcher/money"
	"github.com/stellaranchor/action-dispatcher/validate"
)

// amountsUpdated implements notify_amounts_updated: a corrective action
// letting an operator overwrite the amount_in/amount_out/amount_fee triple
// while a transaction sits in pending_anchor, without otherwise touching
// its status. Reuses the same amount/asset validation as the amount triple
// carried by notify_onchain_funds_received.
type amountsUpdated struct {
	assets dispatcher.AssetService
}

// NewAmountsUpdated constructs the notify_amounts_updated handler.
func NewAmountsUpdated(assets dispatcher.AssetService) Handler {
	return &amountsUpdated{assets: assets}
}

func (h *amountsUpdated) ActionType() ActionType { return ActionNotifyAmountsUpdated }

func (h *amountsUpdated) SupportedProtocols() ProtocolSet {
	return protocols(dispatcher.Protocol24, dispatcher.Protocol31)
}

func (h *amountsUpdated) SupportedStatuses(txn *dispatcher.Transaction) StatusSet {
	return statuses(dispatcher.StatusPendingAnchor)
}

func (h *amountsUpdated) DecodeParams(raw json.RawMessage) (dispatcher.Request, error) {
	return validate.AmountsUpdated(raw)
}

func (h *amountsUpdated) req(r dispatcher.Request) *dispatcher.NotifyAmountsUpdatedRequest {
	return r.(*dispatcher.NotifyAmountsUpdatedRequest)
}

func (h *amountsUpdated) Validate(ctx context.Context, txn *dispatcher.Transaction, r dispatcher.Request) error {
	req := h.req(r)
	if _, err := money.ValidateAmountAsset(ctx, "amount_in", req.AmountIn, h.assets, false); err != nil {
		return err
	}
	if _, err := money.ValidateAmountAsset(ctx, "amount_out", req.AmountOut, h.assets, false); err != nil {
		return err
	}
	if _, err := money.ValidateAmountAsset(ctx, "amount_fee", req.AmountFee, h.assets, true); err != nil {
		return err
	}
	return nil
}

func (h *amountsUpdated) NextStatus(ctx context.Context, txn *dispatcher.Transaction, r dispatcher.Request) (dispatcher.Status, error) {
	return txn.Status, nil
}

func (h *amountsUpdated) Mutate(ctx context.Context, txn *dispatcher.Transaction, r dispatcher.Request) error {
	req := h.req(r)
	txn.AmountIn, txn.AmountInAsset = req.AmountIn.Amount, req.AmountIn.Asset
	txn.AmountOut, txn.AmountOutAsset = req.AmountOut.Amount, req.AmountOut.Asset
	txn.AmountFee, txn.AmountFeeAsset = req.AmountFee.Amount, req.AmountFee.Asset
	return nil
}
