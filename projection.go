package dispatcher

import "time"

// AmountField is the {amount, asset} pair shape used throughout
// GetTransactionResponse.
type AmountField struct {
	Amount *string `json:"amount"`
	Asset  string  `json:"asset,omitempty"`
}

// RefundsResponse is the public projection of a Refunds aggregate.
type RefundsResponse struct {
	AmountRefunded string          `json:"amount_refunded"`
	AmountFee      string          `json:"amount_fee"`
	Payments       []RefundPayment `json:"payments"`
}

// GetTransactionResponse is the stable public JSON shape returned by every
// successful action invocation.
type GetTransactionResponse struct {
	Sep                string           `json:"sep"`
	Kind               string           `json:"kind"`
	Status             string           `json:"status"`
	AmountExpected     AmountField      `json:"amount_expected"`
	AmountIn           *AmountField     `json:"amount_in,omitempty"`
	AmountOut          *AmountField     `json:"amount_out,omitempty"`
	AmountFee          *AmountField     `json:"amount_fee,omitempty"`
	Refunds            *RefundsResponse `json:"refunds,omitempty"`
	UpdatedAt          time.Time        `json:"updated_at"`
	TransferReceivedAt *time.Time       `json:"transfer_received_at,omitempty"`
	Message            string           `json:"message,omitempty"`
}

// Project maps an internal Transaction to its stable public projection.
// Null scalars are omitted; AmountExpected is always present (even
// with a nil amount) to preserve the asset hint.
func Project(txn *Transaction) GetTransactionResponse {
	resp := GetTransactionResponse{
		Sep:       string(txn.Protocol),
		Kind:      string(txn.Kind),
		Status:    string(txn.Status),
		UpdatedAt: txn.UpdatedAt,
		Message:   txn.Message,
		AmountExpected: AmountField{
			Amount: stringOrNil(txn.AmountExpected),
			Asset:  txn.AmountExpectedAsset,
		},
	}

	if txn.AmountIn != "" {
		resp.AmountIn = &AmountField{Amount: stringOrNil(txn.AmountIn), Asset: txn.AmountInAsset}
	}
	if txn.AmountOut != "" {
		resp.AmountOut = &AmountField{Amount: stringOrNil(txn.AmountOut), Asset: txn.AmountOutAsset}
	}
	if txn.AmountFee != "" {
		resp.AmountFee = &AmountField{Amount: stringOrNil(txn.AmountFee), Asset: txn.AmountFeeAsset}
	}
	if txn.TransferReceivedAt != nil {
		t := *txn.TransferReceivedAt
		resp.TransferReceivedAt = &t
	}
	if txn.Refunds != nil {
		resp.Refunds = &RefundsResponse{
			AmountRefunded: txn.Refunds.AmountRefunded,
			AmountFee:      txn.Refunds.AmountFee,
			Payments:       txn.Refunds.Payments,
		}
	}

	return resp
}

func stringOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
