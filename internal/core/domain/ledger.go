package domain

import "github.com/shopspring/decimal"

// LedgerField names an account running total.
type LedgerField string

const (
	BalanceField    LedgerField = "balance"
	CommitmentField LedgerField = "commitment"
)

// Posting is where a record's signed value currently lands.
type Posting struct {
	AccountID   string
	SignedValue decimal.Decimal
}

// AccountDelta is a single increment to apply to an account total.
type AccountDelta struct {
	AccountID string
	Delta     decimal.Decimal
}

// LedgerDeltas returns the increments that move a record from prev to next.
// prev is nil for a create, next is nil for a delete. When the record changes
// account, the old account loses the record's own prior signed value and the
// new account gains the new one. Zero increments are omitted, so re-saving an
// unchanged record yields no deltas.
func LedgerDeltas(prev, next *Posting) []AccountDelta {
	var deltas []AccountDelta
	add := func(accountID string, d decimal.Decimal) {
		if !d.IsZero() {
			deltas = append(deltas, AccountDelta{AccountID: accountID, Delta: d})
		}
	}

	switch {
	case prev == nil && next == nil:
	case prev == nil:
		add(next.AccountID, next.SignedValue)
	case next == nil:
		add(prev.AccountID, prev.SignedValue.Neg())
	case prev.AccountID != next.AccountID:
		add(prev.AccountID, prev.SignedValue.Neg())
		add(next.AccountID, next.SignedValue)
	default:
		add(next.AccountID, next.SignedValue.Sub(prev.SignedValue))
	}
	return deltas
}

// SplitDelta breaks d into parts whose magnitude is at most MaxAmount, so
// every part converts to minor units without overflow. A same-account update
// can move a total by up to twice MaxAmount.
func SplitDelta(d decimal.Decimal) []decimal.Decimal {
	var parts []decimal.Decimal
	step := MaxAmount
	if d.IsNegative() {
		step = MaxAmount.Neg()
	}
	for d.Abs().GreaterThan(MaxAmount) {
		parts = append(parts, step)
		d = d.Sub(step)
	}
	return append(parts, d)
}
