package action

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dispatcher "github.com/stellaranchor/action-dispatcher"
)

func TestRefundInitiated_First_MovesToPendingExternal(t *testing.T) {
	repo := newFakeRepo()
	h := NewRefundInitiated(fakeAssets{"USD": 2})
	now := time.Now()
	repo.put(&dispatcher.Transaction{
		ID: "T", Protocol: dispatcher.Protocol24, Kind: dispatcher.KindDeposit,
		Status: dispatcher.StatusPendingAnchor, AmountIn: "1", AmountInAsset: "USD",
		TransferReceivedAt: &now,
	})

	resp, err := Handle(context.Background(), repo, h, params(t, map[string]any{
		"transaction_id": "T",
		"refund":         map[string]string{"id": "1", "amount": "1", "amount_fee": "0"},
	}), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "pending_external", resp.Status)
	require.NotNil(t, resp.Refunds)
	assert.Equal(t, "1", resp.Refunds.AmountRefunded)
	assert.Equal(t, "0", resp.Refunds.AmountFee)
	require.Len(t, resp.Refunds.Payments, 1)
	assert.Equal(t, "1", resp.Refunds.Payments[0].ID)
}

func TestRefundInitiated_ExceedsAmountIn_Rejected(t *testing.T) {
	repo := newFakeRepo()
	h := NewRefundInitiated(fakeAssets{"USD": 2})
	now := time.Now()
	repo.put(&dispatcher.Transaction{
		ID: "T", Protocol: dispatcher.Protocol24, Kind: dispatcher.KindDeposit,
		Status: dispatcher.StatusPendingAnchor, AmountIn: "1", AmountInAsset: "USD",
		TransferReceivedAt: &now,
	})

	_, err := Handle(context.Background(), repo, h, params(t, map[string]any{
		"transaction_id": "T",
		"refund":         map[string]string{"id": "1", "amount": "1", "amount_fee": "0.1"},
	}), nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Refund amount exceeds amount_in")
}

func TestRefundInitiated_SameIDSameAmounts_SameOutcomeOnIdenticalTransactions(t *testing.T) {
	repo := newFakeRepo()
	h := NewRefundInitiated(fakeAssets{"USD": 2})
	now := time.Now()
	repo.put(&dispatcher.Transaction{
		ID: "T", Protocol: dispatcher.Protocol24, Kind: dispatcher.KindDeposit,
		Status: dispatcher.StatusPendingAnchor, AmountIn: "10", AmountInAsset: "USD",
		TransferReceivedAt: &now,
	})

	req := map[string]any{
		"transaction_id": "T",
		"refund":         map[string]string{"id": "1", "amount": "4", "amount_fee": "0"},
	}

	resp1, err := Handle(context.Background(), repo, h, params(t, req), nil, nil)
	require.NoError(t, err)

	// The first call moves T to pending_external, which this handler's
	// status gate rejects, so the same request cannot be replayed on T.
	// Instead, run the same request against a second transaction T2 with
	// identical starting state and check both outcomes match.
	repo.put(&dispatcher.Transaction{
		ID: "T2", Protocol: dispatcher.Protocol24, Kind: dispatcher.KindDeposit,
		Status: dispatcher.StatusPendingAnchor, AmountIn: "10", AmountInAsset: "USD",
		TransferReceivedAt: &now,
	})
	req2 := map[string]any{
		"transaction_id": "T2",
		"refund":         map[string]string{"id": "1", "amount": "4", "amount_fee": "0"},
	}
	resp2, err := Handle(context.Background(), repo, h, params(t, req2), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, resp1.Refunds.AmountRefunded, resp2.Refunds.AmountRefunded)
	assert.Equal(t, resp1.Status, resp2.Status)
}

func TestRefundInitiated_Reinitiate_ReplacesSameID(t *testing.T) {
	repo := newFakeRepo()
	h := NewRefundInitiated(fakeAssets{"USD": 2})
	now := time.Now()
	repo.put(&dispatcher.Transaction{
		ID: "T", Protocol: dispatcher.Protocol24, Kind: dispatcher.KindDeposit,
		Status: dispatcher.StatusPendingAnchor, AmountIn: "10", AmountInAsset: "USD",
		TransferReceivedAt: &now,
		Refunds:            &dispatcher.Refunds{Payments: []dispatcher.RefundPayment{{ID: "1", Amount: "4", Fee: "0"}}, AmountRefunded: "4"},
	})

	resp, err := Handle(context.Background(), repo, h, params(t, map[string]any{
		"transaction_id": "T",
		"refund":         map[string]string{"id": "1", "amount": "6", "amount_fee": "0"},
	}), nil, nil)

	require.NoError(t, err)
	require.Len(t, resp.Refunds.Payments, 1)
	assert.Equal(t, "6", resp.Refunds.AmountRefunded)
}

func TestRefundInitiated_NoTransferReceived_Gated(t *testing.T) {
	repo := newFakeRepo()
	h := NewRefundInitiated(fakeAssets{"USD": 2})
	repo.put(&dispatcher.Transaction{
		ID: "T", Protocol: dispatcher.Protocol24, Kind: dispatcher.KindDeposit,
		Status: dispatcher.StatusPendingAnchor, AmountIn: "10", AmountInAsset: "USD",
	})

	_, err := Handle(context.Background(), repo, h, params(t, map[string]any{
		"transaction_id": "T",
		"refund":         map[string]string{"id": "1", "amount": "1", "amount_fee": "0"},
	}), nil, nil)

	require.Error(t, err)
}
