package action

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dispatcher "github.com/stellaranchor/action-dispatcher"
)

func TestOnchainFundsReceived_FreshDeposit_SetsStellarTxIDAndStatus(t *testing.T) {
	repo := newFakeRepo()
	h := NewOnchainFundsReceived(fakeAssets{"stellar:USDC": 2}, nil)
	repo.put(&dispatcher.Transaction{
		ID: "T", Protocol: dispatcher.Protocol24, Kind: dispatcher.KindDeposit,
		Status: dispatcher.StatusPendingUserTransferStart, AmountInAsset: "stellar:USDC",
	})

	resp, err := Handle(context.Background(), repo, h, params(t, map[string]any{
		"transaction_id":         "T",
		"stellar_transaction_id": "abc",
	}), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "pending_anchor", resp.Status)
	assert.NotNil(t, resp.TransferReceivedAt)

	stored, _ := repo.Lookup(context.Background(), "T")
	assert.Equal(t, "abc", stored.StellarTransactionID)
}

func TestOnchainFundsReceived_MixedAmountTriple_Rejected(t *testing.T) {
	repo := newFakeRepo()
	h := NewOnchainFundsReceived(fakeAssets{"stellar:USDC": 2}, nil)
	repo.put(&dispatcher.Transaction{
		ID: "T", Protocol: dispatcher.Protocol24, Kind: dispatcher.KindDeposit,
		Status: dispatcher.StatusPendingUserTransferStart, AmountInAsset: "stellar:USDC",
	})

	_, err := Handle(context.Background(), repo, h, params(t, map[string]any{
		"transaction_id":         "T",
		"stellar_transaction_id": "abc",
		"amount_in":              map[string]string{"amount": "10", "asset": "stellar:USDC"},
	}), nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "All or none")
}

func TestOnchainFundsReceived_FullAmountTriple_Applied(t *testing.T) {
	repo := newFakeRepo()
	h := NewOnchainFundsReceived(fakeAssets{"stellar:USDC": 2}, nil)
	repo.put(&dispatcher.Transaction{
		ID: "T", Protocol: dispatcher.Protocol24, Kind: dispatcher.KindDeposit,
		Status: dispatcher.StatusPendingUserTransferStart, AmountInAsset: "stellar:USDC",
	})

	_, err := Handle(context.Background(), repo, h, params(t, map[string]any{
		"transaction_id":         "T",
		"stellar_transaction_id": "abc",
		"amount_in":              map[string]string{"amount": "10", "asset": "stellar:USDC"},
		"amount_out":             map[string]string{"amount": "9.5", "asset": "stellar:USDC"},
		"amount_fee":             map[string]string{"amount": "0.5", "asset": "stellar:USDC"},
	}), nil, nil)

	require.NoError(t, err)
	stored, _ := repo.Lookup(context.Background(), "T")
	assert.Equal(t, "10", stored.AmountIn)
	assert.Equal(t, "9.5", stored.AmountOut)
	assert.Equal(t, "0.5", stored.AmountFee)
}

func TestOnchainFundsReceived_MissingStellarTxID_NoneOnFile_Rejected(t *testing.T) {
	repo := newFakeRepo()
	h := NewOnchainFundsReceived(fakeAssets{"stellar:USDC": 2}, nil)
	repo.put(&dispatcher.Transaction{
		ID: "T", Protocol: dispatcher.Protocol24, Kind: dispatcher.KindDeposit,
		Status: dispatcher.StatusPendingUserTransferStart, AmountInAsset: "stellar:USDC",
	})

	_, err := Handle(context.Background(), repo, h, params(t, map[string]any{
		"transaction_id": "T",
	}), nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "stellar_transaction_id is required")
}

func TestOnchainFundsReceived_PendingExternal_AllowedOnlyBeforeReceipt(t *testing.T) {
	repo := newFakeRepo()
	h := NewOnchainFundsReceived(fakeAssets{"stellar:USDC": 2}, nil)
	repo.put(&dispatcher.Transaction{
		ID: "T", Protocol: dispatcher.Protocol24, Kind: dispatcher.KindDeposit,
		Status: dispatcher.StatusPendingExternal, AmountInAsset: "stellar:USDC",
	})

	resp, err := Handle(context.Background(), repo, h, params(t, map[string]any{
		"transaction_id":         "T",
		"stellar_transaction_id": "abc",
	}), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "pending_anchor", resp.Status)
}

func TestOnchainFundsReceived_WrongKind_Gated(t *testing.T) {
	repo := newFakeRepo()
	h := NewOnchainFundsReceived(fakeAssets{"stellar:USDC": 2}, nil)
	repo.put(&dispatcher.Transaction{
		ID: "T", Protocol: dispatcher.Protocol24, Kind: dispatcher.KindWithdrawal,
		Status: dispatcher.StatusPendingUserTransferStart, AmountInAsset: "stellar:USDC",
	})

	_, err := Handle(context.Background(), repo, h, params(t, map[string]any{
		"transaction_id":         "T",
		"stellar_transaction_id": "abc",
	}), nil, nil)

	require.Error(t, err)
}
