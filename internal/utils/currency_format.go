package utils

import (
	"github.com/SscSPs/finance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatAmount formats an amount at the precision amounts are stored with.
// Example: 12.3 returns "12.30", -5 returns "-5.00"
func FormatAmount(amount decimal.Decimal) string {
	return FormatWithPrecision(amount, domain.AmountScale)
}

// FormatWithPrecision formats an amount with exactly precision fractional digits,
// rounding half away from zero.
func FormatWithPrecision(amount decimal.Decimal, precision int32) string {
	return amount.StringFixed(precision)
}
