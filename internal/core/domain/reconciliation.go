package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerTotals are the recomputed sums for one account.
type LedgerTotals struct {
	AccountID  string          `json:"accountID"`
	Balance    decimal.Decimal `json:"balance"`
	Commitment decimal.Decimal `json:"commitment"`
}

// AccountDrift compares stored running totals with recomputed ones.
type AccountDrift struct {
	AccountID          string          `json:"accountID"`
	AccountName        string          `json:"accountName"`
	StoredBalance      decimal.Decimal `json:"storedBalance"`
	ExpectedBalance    decimal.Decimal `json:"expectedBalance"`
	StoredCommitment   decimal.Decimal `json:"storedCommitment"`
	ExpectedCommitment decimal.Decimal `json:"expectedCommitment"`
}

// Drifted reports whether either stored total disagrees with its recomputed value.
func (d AccountDrift) Drifted() bool {
	return !d.StoredBalance.Equal(d.ExpectedBalance) || !d.StoredCommitment.Equal(d.ExpectedCommitment)
}

// ReconciliationReport summarises one reconciliation run.
type ReconciliationReport struct {
	CheckedAccounts int            `json:"checkedAccounts"`
	Drifts          []AccountDrift `json:"drifts"`
	Repaired        bool           `json:"repaired"`
	RanAt           time.Time      `json:"ranAt"`
}
