// Package dispatcher implements the anchor-platform action dispatcher: an
// RPC-driven state machine that drives individual SEP-24 interactive
// transfers and SEP-31 direct payments through their lifecycle. Operators
// invoke named actions (notify_onchain_funds_received,
// notify_refund_initiated, notify_refund_sent, notify_transaction_expired,
// and peers); each action validates, computes the next status, mutates the
// persisted transaction, and returns its public projection.
package dispatcher

import "time"

// Protocol identifies the Stellar Ecosystem Proposal family of a
// transaction. It is immutable after creation.
type Protocol string

const (
	Protocol24 Protocol = "24"
	Protocol31 Protocol = "31"
)

// Kind distinguishes transfer direction within a protocol. {deposit,
// withdrawal} is valid only under Protocol24; {receive} only under
// Protocol31.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
	KindReceive    Kind = "receive"
)

// Status is a SepTransactionStatus value. Transitions between statuses are
// made by the action handlers (see package action); the type itself does
// not prevent other code from setting it.
type Status string

const (
	StatusIncomplete                   Status = "incomplete"
	StatusPendingUserTransferStart     Status = "pending_user_transfer_start"
	StatusPendingUserTransferComplete  Status = "pending_user_transfer_complete"
	StatusPendingExternal              Status = "pending_external"
	StatusPendingAnchor                Status = "pending_anchor"
	StatusPendingStellar               Status = "pending_stellar"
	StatusPendingReceiver              Status = "pending_receiver"
	StatusPendingCustomerInfoUpdate    Status = "pending_customer_info_update"
	StatusPendingTrust                 Status = "pending_trust"
	StatusCompleted                    Status = "completed"
	StatusRefunded                     Status = "refunded"
	StatusExpired                      Status = "expired"
	StatusError                        Status = "error"
)

// Terminal reports whether s permits no further transitions.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusRefunded, StatusExpired, StatusError:
		return true
	default:
		return false
	}
}

// Money pairs a decimal-string amount with the asset code it is
// denominated in. A nil *Money means the field is absent, not zero.
type Money struct {
	Amount string
	Asset  string
}

// RefundPayment is a single refund disbursement recorded against a
// transaction's Refunds aggregate. ID is unique within the aggregate.
type RefundPayment struct {
	ID     string `json:"id"`
	Amount string `json:"amount"`
	Fee    string `json:"fee"`
}

// Refunds is the refund aggregate attached to a transaction. Payments
// preserves insertion order; AmountRefunded and AmountFee are derived
// fields recalculated after every mutation (see package refunds).
type Refunds struct {
	Payments       []RefundPayment
	AmountRefunded string
	AmountFee      string
}

// Transaction is the canonical persisted transaction record. Protocol and
// Kind are immutable after creation; Status may only change per the
// per-action transition rules. AmountOut/AmountFee are set atomically as a
// triple with AmountIn, or not at all.
type Transaction struct {
	ID     string
	Protocol Protocol
	Kind   Kind
	Status Status

	AmountIn      string
	AmountInAsset string

	AmountOut      string
	AmountOutAsset string
	AmountFee      string
	AmountFeeAsset string

	AmountExpected      string
	AmountExpectedAsset string

	StellarTransactionID string
	TransferReceivedAt   *time.Time

	UpdatedAt time.Time
	Message   string

	Refunds *Refunds

	// Version supports optimistic-concurrency saves (see repo/memory.CASStore).
	Version int64
}
