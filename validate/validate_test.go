package validate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellaranchor/action-dispatcher/errors"
)

func TestOnchainFundsReceived_MixedAmountTripleRejected(t *testing.T) {
	raw := json.RawMessage(`{"transaction_id":"T","amount_in":{"amount":"1","asset":"stellar:USDC"}}`)
	_, err := OnchainFundsReceived(raw)
	require.Error(t, err)
	var de *errors.DispatchError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "All or none of the amount_in, amount_out, and amount_fee should be set", de.Message)
}

func TestOnchainFundsReceived_NoAmountsOK(t *testing.T) {
	raw := json.RawMessage(`{"transaction_id":"T","stellar_transaction_id":"abc"}`)
	req, err := OnchainFundsReceived(raw)
	require.NoError(t, err)
	assert.Equal(t, "abc", req.StellarTransactionID)
}

func TestOnchainFundsReceived_MissingTransactionID(t *testing.T) {
	raw := json.RawMessage(`{"stellar_transaction_id":"abc"}`)
	_, err := OnchainFundsReceived(raw)
	require.Error(t, err)
}

func TestRefundInitiated_RequiresRefund(t *testing.T) {
	raw := json.RawMessage(`{"transaction_id":"T"}`)
	_, err := RefundInitiated(raw)
	require.Error(t, err)
}

func TestTransactionExpired_RequiresTransactionID(t *testing.T) {
	raw := json.RawMessage(`{"message":"timed out"}`)
	_, err := TransactionExpired(raw)
	require.Error(t, err)
}

func TestRefundSent_RefundOptionalAtStructuralLayer(t *testing.T) {
	raw := json.RawMessage(`{"transaction_id":"T"}`)
	req, err := RefundSent(raw)
	require.NoError(t, err)
	assert.Nil(t, req.Refund)
}
