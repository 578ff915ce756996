package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies what kind of money container an account is.
type AccountType string

const (
	Savings AccountType = "SAVINGS"
	Current AccountType = "CURRENT"
	Loan    AccountType = "LOAN"
	Lending AccountType = "LENDING"
)

// DefaultAccountType is used when an account is created without a type.
const DefaultAccountType = Current

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Savings, Current, Loan, Lending:
		return true
	}
	return false
}

// Account represents a money container within the core domain.
// Balance and Commitment are running totals maintained by ledger increments;
// account create/update never writes them.
type Account struct {
	AccountID   string          `json:"accountID"`   // Primary Key (UUID)
	Name        string          `json:"name"`        // User-defined name
	Description string          `json:"description"` // Optional
	AccountType AccountType     `json:"accountType"` // SAVINGS, CURRENT, LOAN, LENDING
	Closed      bool            `json:"closed"`
	Balance     decimal.Decimal `json:"balance"`    // Sum of OriginalValue over live transactions
	Commitment  decimal.Decimal `json:"commitment"` // Sum of OriginalValue over live commitments
	AuditFields
}
