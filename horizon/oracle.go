// Package horizon adapts a Horizon server into the dispatcher's Horizon
// port: the only on-chain fact the dispatcher ever asks for is when a given
// Stellar transaction hash was confirmed.
package horizon

import (
	"context"
	"fmt"

	"github.com/stellar/go-stellar-sdk/clients/horizonclient"
)

// ConfirmationOracle implements dispatcher.Horizon using a Horizon server,
// narrowed to transaction-confirmation lookup.
type ConfirmationOracle struct {
	client *horizonclient.Client
}

// NewConfirmationOracle creates a ConfirmationOracle backed by the given
// Horizon URL.
func NewConfirmationOracle(horizonURL string) *ConfirmationOracle {
	return &ConfirmationOracle{client: &horizonclient.Client{HorizonURL: horizonURL}}
}

// ConfirmationTime returns the Unix timestamp at which stellarTransactionID
// was included in a closed ledger.
func (o *ConfirmationOracle) ConfirmationTime(_ context.Context, stellarTransactionID string) (int64, error) {
	txn, err := o.client.TransactionDetail(stellarTransactionID)
	if err != nil {
		return 0, fmt.Errorf("horizon: failed to fetch transaction %s: %w", stellarTransactionID, err)
	}
	return txn.LedgerCloseTime.Unix(), nil
}
