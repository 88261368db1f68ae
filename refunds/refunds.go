// Package refunds implements refund accounting: summing refund payments,
// detecting duplicates, and recalculating the Refunds aggregate's
// derived totals.
package refunds

import (
	"github.com/shopspring/decimal"

	dispatcher "github.com/stellaranchor/action-dispatcher"
)

// UpsertPayment returns a fresh Refunds aggregate with p inserted: if a
// payment with the same ID already exists, it is replaced in place;
// otherwise p is appended. The input aggregate is never mutated, only
// read, eliminating in-place removeIf ordering hazards.
func UpsertPayment(agg *dispatcher.Refunds, p dispatcher.RefundPayment) *dispatcher.Refunds {
	var payments []dispatcher.RefundPayment
	if agg != nil {
		payments = make([]dispatcher.RefundPayment, len(agg.Payments))
		copy(payments, agg.Payments)
	}

	replaced := false
	for i, existing := range payments {
		if existing.ID == p.ID {
			payments[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		payments = append(payments, p)
	}

	fresh := &dispatcher.Refunds{Payments: payments}
	if agg != nil {
		fresh.AmountRefunded = agg.AmountRefunded
		fresh.AmountFee = agg.AmountFee
	}
	return fresh
}

// TotalRefunded sums principal+fee across all payments in agg, rounded to
// precision fractional digits using banker's rounding.
func TotalRefunded(agg *dispatcher.Refunds, precision int32) decimal.Decimal {
	total := decimal.Zero
	if agg == nil {
		return total
	}
	for _, p := range agg.Payments {
		amount, err := decimal.NewFromString(p.Amount)
		if err != nil {
			continue
		}
		fee, err := decimal.NewFromString(p.Fee)
		if err != nil {
			continue
		}
		total = total.Add(amount).Add(fee)
	}
	return total.RoundBank(precision)
}

// TotalFee sums the fee component across all payments in agg, rounded to
// precision fractional digits using banker's rounding.
func TotalFee(agg *dispatcher.Refunds, precision int32) decimal.Decimal {
	total := decimal.Zero
	if agg == nil {
		return total
	}
	for _, p := range agg.Payments {
		fee, err := decimal.NewFromString(p.Fee)
		if err != nil {
			continue
		}
		total = total.Add(fee)
	}
	return total.RoundBank(precision)
}

// Recalculate recomputes AmountRefunded and AmountFee on a copy of agg from
// its Payments (principal+fee split). The input aggregate is not mutated.
func Recalculate(agg *dispatcher.Refunds, precision int32) *dispatcher.Refunds {
	if agg == nil {
		return nil
	}
	fresh := &dispatcher.Refunds{Payments: agg.Payments}
	fresh.AmountRefunded = TotalRefunded(agg, precision).String()
	fresh.AmountFee = TotalFee(agg, precision).String()
	return fresh
}

// FindByID returns the payment with the given id and true, or the zero
// value and false if absent.
func FindByID(agg *dispatcher.Refunds, id string) (dispatcher.RefundPayment, bool) {
	if agg == nil {
		return dispatcher.RefundPayment{}, false
	}
	for _, p := range agg.Payments {
		if p.ID == id {
			return p, true
		}
	}
	return dispatcher.RefundPayment{}, false
}
