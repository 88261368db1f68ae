package money

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dispatcher "github.com/stellaranchor/action-dispatcher"
	"github.com/stellaranchor/action-dispatcher/errors"
)

type fakeAssetService struct {
	precision map[string]int
}

func (f fakeAssetService) Precision(_ context.Context, asset string) (int, bool) {
	p, ok := f.precision[asset]
	return p, ok
}

func TestValidateAmountAsset(t *testing.T) {
	svc := fakeAssetService{precision: map[string]int{"stellar:USDC": 2}}

	t.Run("valid positive amount", func(t *testing.T) {
		_, err := ValidateAmountAsset(context.Background(), "amount_in", dispatcher.Money{Amount: "1.50", Asset: "stellar:USDC"}, svc, false)
		require.NoError(t, err)
	})

	t.Run("zero rejected for non-fee field", func(t *testing.T) {
		_, err := ValidateAmountAsset(context.Background(), "amount_in", dispatcher.Money{Amount: "0", Asset: "stellar:USDC"}, svc, false)
		require.Error(t, err)
		var de *errors.DispatchError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, errors.BadRequest, de.Code)
		assert.Contains(t, de.Message, "should be positive")
	})

	t.Run("zero allowed for fee field", func(t *testing.T) {
		_, err := ValidateAmountAsset(context.Background(), "refund.amount_fee", dispatcher.Money{Amount: "0", Asset: "stellar:USDC"}, svc, true)
		require.NoError(t, err)
	})

	t.Run("negative fee rejected", func(t *testing.T) {
		_, err := ValidateAmountAsset(context.Background(), "refund.amount_fee", dispatcher.Money{Amount: "-0.01", Asset: "stellar:USDC"}, svc, true)
		require.Error(t, err)
		var de *errors.DispatchError
		require.True(t, errors.As(err, &de))
		assert.Contains(t, de.Message, "non-negative")
	})

	t.Run("unsupported asset", func(t *testing.T) {
		_, err := ValidateAmountAsset(context.Background(), "amount_in", dispatcher.Money{Amount: "1", Asset: "stellar:XYZ"}, svc, false)
		require.Error(t, err)
		var de *errors.DispatchError
		require.True(t, errors.As(err, &de))
		assert.Contains(t, de.Message, "is not supported")
	})

	t.Run("precision exceeded", func(t *testing.T) {
		_, err := ValidateAmountAsset(context.Background(), "amount_in", dispatcher.Money{Amount: "1.123", Asset: "stellar:USDC"}, svc, false)
		require.Error(t, err)
		var de *errors.DispatchError
		require.True(t, errors.As(err, &de))
		assert.Contains(t, de.Message, "exceeds asset precision")
	})

	t.Run("malformed amount", func(t *testing.T) {
		_, err := ValidateAmountAsset(context.Background(), "amount_in", dispatcher.Money{Amount: "not-a-number", Asset: "stellar:USDC"}, svc, false)
		require.Error(t, err)
	})
}
