// Package money implements amount/asset validation: parsing and
// range-checking monetary amounts against an asset's decimal precision.
package money

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	dispatcher "github.com/stellaranchor/action-dispatcher"
	"github.com/stellaranchor/action-dispatcher/errors"
)

// Field is a monetary field under validation, e.g. "amount_in" or
// "refund"; messages append ".amount" or ".asset" to it.
type Field string

// ValidateAmountAsset parses and range-checks a {amount, asset} pair.
//
//   - amount must parse as a finite decimal; sign violations fail with
//     BAD_REQUEST "<field>.amount should be positive" (or "non-negative"
//     when feeSemantics is true).
//   - asset must resolve in svc; otherwise BAD_REQUEST
//     "<field>.asset is not supported".
//   - amount's fractional digit count must not exceed the asset's
//     precision; otherwise BAD_REQUEST.
//
// On success, returns the parsed decimal.
func ValidateAmountAsset(ctx context.Context, field Field, m dispatcher.Money, svc dispatcher.AssetService, feeSemantics bool) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return decimal.Decimal{}, errors.NewBadRequest(fmt.Sprintf("%s.amount is not a valid decimal", field))
	}

	if feeSemantics {
		if amount.IsNegative() {
			return decimal.Decimal{}, errors.NewBadRequest(fmt.Sprintf("%s.amount should be non-negative", field))
		}
	} else {
		if !amount.IsPositive() {
			return decimal.Decimal{}, errors.NewBadRequest(fmt.Sprintf("%s.amount should be positive", field))
		}
	}

	precision, ok := svc.Precision(ctx, m.Asset)
	if !ok {
		return decimal.Decimal{}, errors.NewBadRequest(fmt.Sprintf("%s.asset is not supported", field))
	}

	if FractionalDigits(amount) > precision {
		return decimal.Decimal{}, errors.NewBadRequest(fmt.Sprintf("%s.amount exceeds asset precision", field))
	}

	return amount, nil
}

// FractionalDigits returns the number of digits to the right of the
// decimal point in d as parsed; trailing zeros count ("1.50" has 2).
func FractionalDigits(d decimal.Decimal) int {
	exp := -d.Exponent()
	if exp < 0 {
		return 0
	}
	return int(exp)
}
