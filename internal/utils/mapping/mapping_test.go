package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/finance_ledger/internal/core/domain"
	"github.com/SscSPs/finance_ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccountMapping_StoresCents(t *testing.T) {
	acc := domain.Account{
		AccountID:   "acc-1",
		Name:        "Wallet",
		AccountType: domain.Savings,
		Balance:     decimal.RequireFromString("-12.34"),
		Commitment:  decimal.RequireFromString("100"),
	}

	m := ToModelAccount(acc)
	assert.Equal(t, int64(-1234), m.Balance)
	assert.Equal(t, int64(10000), m.Commitment)
	assert.Equal(t, models.AccountType("SAVINGS"), m.AccountType)

	back := ToDomainAccount(m)
	assert.True(t, acc.Balance.Equal(back.Balance))
	assert.True(t, acc.Commitment.Equal(back.Commitment))
}

func TestCommitmentMapping_TruncatesExpectedDate(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	c := domain.Commitment{
		CommitmentID:    "c-1",
		AccountID:       "acc-1",
		CategoryID:      "cat-1",
		Amount:          decimal.RequireFromString("50.5"),
		TransactionType: domain.Expense,
		OriginalValue:   decimal.RequireFromString("-50.5"),
		ExpectedDate:    time.Date(2024, 3, 9, 23, 30, 0, 0, loc),
	}

	m := ToModelCommitment(c)
	assert.Equal(t, int64(5050), m.Amount)
	assert.Equal(t, int64(-5050), m.OriginalValue)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), m.ExpectedDate)
}

func TestTransactionMapping_KeepsNullableReferences(t *testing.T) {
	m := models.Transaction{
		TransactionID:   "t-1",
		AccountID:       "acc-1",
		Amount:          700,
		TransactionType: "INCOME",
		OriginalValue:   700,
	}

	d := ToDomainTransaction(m)
	assert.Nil(t, d.CategoryID)
	assert.Nil(t, d.CommitmentID)
	assert.Equal(t, "7", d.Amount.String())
	assert.Equal(t, domain.Income, d.TransactionType)
}
