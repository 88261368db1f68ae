package action

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dispatcher "github.com/stellaranchor/action-dispatcher"
)

func TestInteractiveFlowCompleted_Deposit_MovesToPendingUserTransferStart(t *testing.T) {
	repo := newFakeRepo()
	h := NewInteractiveFlowCompleted()
	repo.put(&dispatcher.Transaction{
		ID: "T", Protocol: dispatcher.Protocol24, Kind: dispatcher.KindDeposit,
		Status: dispatcher.StatusIncomplete,
	})

	resp, err := Handle(context.Background(), repo, h, params(t, map[string]any{
		"transaction_id": "T",
	}), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "pending_user_transfer_start", resp.Status)
}

func TestInteractiveFlowCompleted_Withdrawal_MovesToPendingAnchor(t *testing.T) {
	repo := newFakeRepo()
	h := NewInteractiveFlowCompleted()
	repo.put(&dispatcher.Transaction{
		ID: "T", Protocol: dispatcher.Protocol24, Kind: dispatcher.KindWithdrawal,
		Status: dispatcher.StatusIncomplete,
	})

	resp, err := Handle(context.Background(), repo, h, params(t, map[string]any{
		"transaction_id": "T",
	}), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "pending_anchor", resp.Status)
}

func TestInteractiveFlowCompleted_Sep31_Gated(t *testing.T) {
	repo := newFakeRepo()
	h := NewInteractiveFlowCompleted()
	repo.put(&dispatcher.Transaction{
		ID: "T", Protocol: dispatcher.Protocol31, Kind: dispatcher.KindReceive,
		Status: dispatcher.StatusIncomplete,
	})

	_, err := Handle(context.Background(), repo, h, params(t, map[string]any{
		"transaction_id": "T",
	}), nil, nil)

	require.Error(t, err)
}

func TestInteractiveFlowCompleted_WrongStatus_Gated(t *testing.T) {
	repo := newFakeRepo()
	h := NewInteractiveFlowCompleted()
	repo.put(&dispatcher.Transaction{
		ID: "T", Protocol: dispatcher.Protocol24, Kind: dispatcher.KindDeposit,
		Status: dispatcher.StatusPendingAnchor,
	})

	_, err := Handle(context.Background(), repo, h, params(t, map[string]any{
		"transaction_id": "T",
	}), nil, nil)

	require.Error(t, err)
}
