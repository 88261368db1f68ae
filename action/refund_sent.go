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

// refundSent implements notify_refund_sent for both SEP-24 and SEP-31.
// Protocol/kind dispatch is an explicit switch over the sum type rather
// than a handler hierarchy.
type refundSent struct {
	assets dispatcher.AssetService
}

// NewRefundSent constructs the notify_refund_sent handler.
func NewRefundSent(assets dispatcher.AssetService) Handler {
	return &refundSent{assets: assets}
}

func (h *refundSent) ActionType() ActionType { return ActionNotifyRefundSent }

func (h *refundSent) SupportedProtocols() ProtocolSet {
	return protocols(dispatcher.Protocol24, dispatcher.Protocol31)
}

func (h *refundSent) SupportedStatuses(txn *dispatcher.Transaction) StatusSet {
	switch txn.Protocol {
	case dispatcher.Protocol24:
		switch txn.Kind {
		case dispatcher.KindDeposit:
			if txn.TransferReceivedAt != nil {
				return statuses(dispatcher.StatusPendingExternal, dispatcher.StatusPendingAnchor)
			}
			return statuses()
		case dispatcher.KindWithdrawal:
			s := statuses(dispatcher.StatusPendingStellar)
			if txn.TransferReceivedAt != nil {
				s[dispatcher.StatusPendingAnchor] = true
			}
			return s
		default:
			return statuses()
		}
	case dispatcher.Protocol31:
		if txn.Kind != dispatcher.KindReceive {
			return statuses()
		}
		return statuses(dispatcher.StatusPendingStellar, dispatcher.StatusPendingReceiver)
	default:
		return statuses()
	}
}

func (h *refundSent) DecodeParams(raw json.RawMessage) (dispatcher.Request, error) {
	return validate.RefundSent(raw)
}

func (h *refundSent) req(r dispatcher.Request) *dispatcher.NotifyRefundSentRequest {
	return r.(*dispatcher.NotifyRefundSentRequest)
}

func (h *refundSent) Validate(ctx context.Context, txn *dispatcher.Transaction, r dispatcher.Request) error {
	req := h.req(r)
	hasExisting := txn.Refunds != nil && len(txn.Refunds.Payments) > 0

	switch {
	case txn.Protocol == dispatcher.Protocol24 && txn.Status == dispatcher.StatusPendingAnchor:
		if req.Refund == nil {
			return errors.NewInvalidParams("refund is required")
		}
	case txn.Protocol == dispatcher.Protocol31 && txn.Status == dispatcher.StatusPendingReceiver:
		if req.Refund == nil {
			return errors.NewInvalidParams("refund is required")
		}
		if hasExisting {
			return errors.NewInvalidParams("SEP-31 transactions may not be refunded more than once")
		}
	case txn.Protocol == dispatcher.Protocol31 && txn.Status == dispatcher.StatusPendingStellar:
		if !hasExisting {
			return errors.NewInvalidParams("Custody payment hasn't been completed yet")
		}
	}

	if req.Refund != nil {
		if _, err := money.ValidateAmountAsset(ctx, "refund", dispatcher.Money{Amount: req.Refund.Amount, Asset: txn.AmountInAsset}, h.assets, false); err != nil {
			return err
		}
		if _, err := money.ValidateAmountAsset(ctx, "refund", dispatcher.Money{Amount: req.Refund.AmountFee, Asset: txn.AmountInAsset}, h.assets, true); err != nil {
			return err
		}
	}

	return nil
}

// totalRefunded computes the new cumulative refunded amount for this
// notification, branching on protocol, status, and whether a prior
// refund payment exists.
func (h *refundSent) totalRefunded(ctx context.Context, txn *dispatcher.Transaction, req *dispatcher.NotifyRefundSentRequest, precision int32) (decimal.Decimal, error) {
	existing := txn.Refunds
	noPrior := existing == nil || len(existing.Payments) == 0

	newAmount := func() (decimal.Decimal, error) {
		amt, err := decimal.NewFromString(req.Refund.Amount)
		if err != nil {
			return decimal.Decimal{}, errors.NewInternal("refund amount is not a valid decimal", err)
		}
		fee, err := decimal.NewFromString(req.Refund.AmountFee)
		if err != nil {
			return decimal.Decimal{}, errors.NewInternal("refund fee is not a valid decimal", err)
		}
		return amt.Add(fee), nil
	}

	if noPrior {
		return newAmount()
	}

	switch txn.Protocol {
	case dispatcher.Protocol24:
		switch txn.Status {
		case dispatcher.StatusPendingAnchor:
			added, err := newAmount()
			if err != nil {
				return decimal.Decimal{}, err
			}
			return refunds.TotalRefunded(existing, precision).Add(added), nil
		case dispatcher.StatusPendingExternal:
			if req.Refund == nil {
				return refunds.TotalRefunded(existing, precision), nil
			}
			found := false
			sum := decimal.Zero
			for _, p := range existing.Payments {
				if p.ID == req.Refund.ID {
					found = true
					v, err := newAmount()
					if err != nil {
						return decimal.Decimal{}, err
					}
					sum = sum.Add(v)
					continue
				}
				amt, err := decimal.NewFromString(p.Amount)
				if err != nil {
					return decimal.Decimal{}, errors.NewInternal("stored refund amount is not a valid decimal", err)
				}
				fee, err := decimal.NewFromString(p.Fee)
				if err != nil {
					return decimal.Decimal{}, errors.NewInternal("stored refund fee is not a valid decimal", err)
				}
				sum = sum.Add(amt).Add(fee)
			}
			if !found {
				return decimal.Decimal{}, errors.NewInvalidParams("Invalid refund id")
			}
			return sum.RoundBank(precision), nil
		default:
			added, err := newAmount()
			if err != nil {
				return decimal.Decimal{}, err
			}
			return refunds.TotalRefunded(existing, precision).Add(added), nil
		}
	case dispatcher.Protocol31:
		switch txn.Status {
		case dispatcher.StatusPendingReceiver:
			return newAmount()
		case dispatcher.StatusPendingStellar:
			if req.Refund == nil {
				return refunds.TotalRefunded(existing, precision), nil
			}
			if len(existing.Payments) != 1 || existing.Payments[0].ID != req.Refund.ID {
				return decimal.Decimal{}, errors.NewInvalidParams("Invalid refund id")
			}
			return newAmount()
		}
	}

	return refunds.TotalRefunded(existing, precision), nil
}

func (h *refundSent) NextStatus(ctx context.Context, txn *dispatcher.Transaction, r dispatcher.Request) (dispatcher.Status, error) {
	req := h.req(r)
	precision, _ := h.assets.Precision(ctx, txn.AmountInAsset)

	total, err := h.totalRefunded(ctx, txn, req, int32(precision))
	if err != nil {
		return "", err
	}

	amountIn, err := decimal.NewFromString(txn.AmountIn)
	if err != nil {
		return "", errors.NewInternal("stored amount_in is not a valid decimal", err)
	}
	amountIn = amountIn.RoundBank(int32(precision))

	switch {
	case total.Equal(amountIn):
		return dispatcher.StatusRefunded, nil
	case total.LessThan(amountIn):
		return dispatcher.StatusPendingAnchor, nil
	default:
		return "", errors.NewInvalidParams("Refund amount exceeds amount_in")
	}
}

func (h *refundSent) Mutate(ctx context.Context, txn *dispatcher.Transaction, r dispatcher.Request) error {
	req := h.req(r)
	if req.Refund == nil {
		return nil
	}
	precision, _ := h.assets.Precision(ctx, txn.AmountInAsset)
	fresh := refunds.UpsertPayment(txn.Refunds, dispatcher.RefundPayment{
		ID: req.Refund.ID, Amount: req.Refund.Amount, Fee: req.Refund.AmountFee,
	})
	txn.Refunds = refunds.Recalculate(fresh, int32(precision))
	return nil
}
