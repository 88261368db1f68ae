package action

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	dispatcher "github.com/stellaranchor/action-dispatcher"
	"github.com/stellaranchor/action-dispatcher/errors"
	"github.com/stellaranchor/action-dispatcher/money"
	"github.com/stellaranchor/action-dispatcher/validate"
)

// onchainFundsReceived implements notify_onchain_funds_received (SEP-24
// deposits only).
type onchainFundsReceived struct {
	assets dispatcher.AssetService
	clock  Clock
}

// NewOnchainFundsReceived constructs the notify_onchain_funds_received
// handler. clock defaults to time.Now when nil.
func NewOnchainFundsReceived(assets dispatcher.AssetService, clock Clock) Handler {
	if clock == nil {
		clock = time.Now
	}
	return &onchainFundsReceived{assets: assets, clock: clock}
}

func (h *onchainFundsReceived) ActionType() ActionType { return ActionNotifyOnchainFundsReceived }

func (h *onchainFundsReceived) SupportedProtocols() ProtocolSet {
	return protocols(dispatcher.Protocol24)
}

func (h *onchainFundsReceived) SupportedStatuses(txn *dispatcher.Transaction) StatusSet {
	if txn.Kind != dispatcher.KindDeposit {
		return statuses()
	}
	s := statuses(dispatcher.StatusPendingUserTransferStart)
	if txn.TransferReceivedAt == nil {
		s[dispatcher.StatusPendingExternal] = true
	}
	return s
}

func (h *onchainFundsReceived) DecodeParams(raw json.RawMessage) (dispatcher.Request, error) {
	return validate.OnchainFundsReceived(raw)
}

func (h *onchainFundsReceived) req(r dispatcher.Request) *dispatcher.NotifyOnchainFundsReceivedRequest {
	return r.(*dispatcher.NotifyOnchainFundsReceivedRequest)
}

func (h *onchainFundsReceived) Validate(ctx context.Context, txn *dispatcher.Transaction, r dispatcher.Request) error {
	req := h.req(r)

	if strings.TrimSpace(req.StellarTransactionID) == "" && strings.TrimSpace(txn.StellarTransactionID) == "" {
		return errors.NewInvalidParams("stellar_transaction_id is required")
	}

	if req.AmountIn != nil {
		if _, err := money.ValidateAmountAsset(ctx, "amount_in", *req.AmountIn, h.assets, false); err != nil {
			return err
		}
		if _, err := money.ValidateAmountAsset(ctx, "amount_out", *req.AmountOut, h.assets, false); err != nil {
			return err
		}
		if _, err := money.ValidateAmountAsset(ctx, "amount_fee", *req.AmountFee, h.assets, true); err != nil {
			return err
		}
	}

	return nil
}

func (h *onchainFundsReceived) NextStatus(ctx context.Context, txn *dispatcher.Transaction, r dispatcher.Request) (dispatcher.Status, error) {
	return dispatcher.StatusPendingAnchor, nil
}

func (h *onchainFundsReceived) Mutate(ctx context.Context, txn *dispatcher.Transaction, r dispatcher.Request) error {
	req := h.req(r)

	if strings.TrimSpace(req.StellarTransactionID) != "" {
		txn.StellarTransactionID = req.StellarTransactionID
		now := h.clock()
		txn.TransferReceivedAt = &now
	}

	if req.AmountIn != nil {
		txn.AmountIn, txn.AmountInAsset = req.AmountIn.Amount, req.AmountIn.Asset
		txn.AmountOut, txn.AmountOutAsset = req.AmountOut.Amount, req.AmountOut.Asset
		txn.AmountFee, txn.AmountFeeAsset = req.AmountFee.Amount, req.AmountFee.Asset
	}

	return nil
}
