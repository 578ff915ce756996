package domain

import (
	"fmt"
	"math"

	"github.com/SscSPs/finance_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType indicates whether money comes in or goes out.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// AmountScale is the number of fractional digits amounts are persisted with.
const AmountScale = 2

// MaxAmount is the largest magnitude whose minor units fit in an int64.
var MaxAmount = decimal.NewFromInt(math.MaxInt64).Shift(-AmountScale)

// IsValid reports whether t is INCOME or EXPENSE.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// SignedAmount applies the sign of the transaction type to an unsigned amount:
// INCOME keeps it positive, EXPENSE negates it.
func SignedAmount(amount decimal.Decimal, txType TransactionType) (decimal.Decimal, error) {
	switch txType {
	case Income:
		return amount, nil
	case Expense:
		return amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown transaction type '%s'", apperrors.ErrValidation, txType)
	}
}

// ValidateAmount checks that an unsigned amount is non-negative, fits AmountScale
// and does not exceed MaxAmount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative, got %s", apperrors.ErrValidation, amount.String())
	}
	if !amount.Equal(amount.Round(AmountScale)) {
		return fmt.Errorf("%w: amount %s has more than %d fractional digits", apperrors.ErrValidation, amount.String(), AmountScale)
	}
	if amount.GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: amount %s exceeds the maximum %s", apperrors.ErrValidation, amount.String(), MaxAmount.String())
	}
	return nil
}

// ToMinorUnits converts a decimal amount into integer cents for storage.
// Callers bound the magnitude to MaxAmount first.
func ToMinorUnits(d decimal.Decimal) int64 {
	return d.Shift(AmountScale).Round(0).IntPart()
}

// FromMinorUnits converts stored cents back into a decimal amount.
func FromMinorUnits(cents int64) decimal.Decimal {
	return decimal.New(cents, -AmountScale)
}
