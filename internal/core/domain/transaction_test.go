package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/finance_ledger/internal/apperrors"
	"github.com/SscSPs/finance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tx      domain.Transaction
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid income transaction",
			tx: domain.Transaction{
				AccountID:       "acc_123",
				Amount:          decimal.NewFromFloat(100.00),
				TransactionType: domain.Income,
			},
		},
		{
			name: "valid zero amount expense",
			tx: domain.Transaction{
				AccountID:       "acc_123",
				Amount:          decimal.Zero,
				TransactionType: domain.Expense,
			},
		},
		{
			name: "missing account",
			tx: domain.Transaction{
				Amount:          decimal.NewFromInt(5),
				TransactionType: domain.Income,
			},
			wantErr: true,
			errMsg:  "account is required",
		},
		{
			name: "unknown type",
			tx: domain.Transaction{
				AccountID:       "acc_123",
				Amount:          decimal.NewFromInt(5),
				TransactionType: "DEBIT",
			},
			wantErr: true,
			errMsg:  "unknown transaction type",
		},
		{
			name: "negative amount",
			tx: domain.Transaction{
				AccountID:       "acc_123",
				Amount:          decimal.NewFromInt(-5),
				TransactionType: domain.Expense,
			},
			wantErr: true,
			errMsg:  "must not be negative",
		},
		{
			name: "too many fractional digits",
			tx: domain.Transaction{
				AccountID:       "acc_123",
				Amount:          decimal.RequireFromString("1.005"),
				TransactionType: domain.Expense,
			},
			wantErr: true,
			errMsg:  "fractional digits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_ApplySign(t *testing.T) {
	tx := domain.Transaction{AccountID: "a", Amount: decimal.NewFromInt(20), TransactionType: domain.Expense}
	require.NoError(t, tx.ApplySign())
	assert.True(t, decimal.NewFromInt(-20).Equal(tx.OriginalValue))

	posting := tx.Posting()
	assert.Equal(t, "a", posting.AccountID)
	assert.True(t, tx.OriginalValue.Equal(posting.SignedValue))
}

func TestCommitment_Validate(t *testing.T) {
	valid := func() domain.Commitment {
		return domain.Commitment{
			AccountID:       "acc_1",
			CategoryID:      "cat_1",
			Amount:          decimal.NewFromInt(300),
			TransactionType: domain.Expense,
			ExpectedDate:    time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		}
	}

	c := valid()
	assert.NoError(t, c.Validate())

	noDate := valid()
	noDate.ExpectedDate = time.Time{}
	err := noDate.Validate()
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "expected date")

	noCategory := valid()
	noCategory.CategoryID = ""
	assert.ErrorIs(t, noCategory.Validate(), apperrors.ErrValidation)

	noType := valid()
	noType.TransactionType = ""
	assert.ErrorIs(t, noType.Validate(), apperrors.ErrValidation)

	require.NoError(t, c.ApplySign())
	assert.True(t, decimal.NewFromInt(-300).Equal(c.OriginalValue))
}
