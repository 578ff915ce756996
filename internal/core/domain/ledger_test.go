package domain_test

import (
	"testing"

	"github.com/SscSPs/finance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func posting(account string, v int64) *domain.Posting {
	return &domain.Posting{AccountID: account, SignedValue: decimal.NewFromInt(v)}
}

func TestLedgerDeltas(t *testing.T) {
	tests := []struct {
		name string
		prev *domain.Posting
		next *domain.Posting
		want map[string]int64
	}{
		{name: "create", next: posting("x", 50), want: map[string]int64{"x": 50}},
		{name: "create expense", next: posting("x", -20), want: map[string]int64{"x": -20}},
		{name: "amount raised", prev: posting("x", 50), next: posting("x", 80), want: map[string]int64{"x": 30}},
		{name: "income flipped to expense", prev: posting("x", 50), next: posting("x", -50), want: map[string]int64{"x": -100}},
		{name: "moved to another account", prev: posting("x", 50), next: posting("y", 50), want: map[string]int64{"x": -50, "y": 50}},
		{name: "moved and changed", prev: posting("x", -20), next: posting("y", 70), want: map[string]int64{"x": 20, "y": 70}},
		{name: "delete", prev: posting("x", 50), want: map[string]int64{"x": -50}},
		{name: "unchanged resave", prev: posting("x", 50), next: posting("x", 50), want: map[string]int64{}},
		{name: "create with zero amount", next: posting("x", 0), want: map[string]int64{}},
		{name: "nothing", want: map[string]int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deltas := domain.LedgerDeltas(tt.prev, tt.next)
			require.Len(t, deltas, len(tt.want))
			for _, d := range deltas {
				want, ok := tt.want[d.AccountID]
				require.True(t, ok, "unexpected delta for account %s", d.AccountID)
				assert.True(t, decimal.NewFromInt(want).Equal(d.Delta), "account %s: want %d got %s", d.AccountID, want, d.Delta)
			}
		})
	}
}

func TestLedgerDeltas_MoveOrdersOldAccountFirst(t *testing.T) {
	deltas := domain.LedgerDeltas(posting("old", 10), posting("new", 10))
	require.Len(t, deltas, 2)
	assert.Equal(t, "old", deltas[0].AccountID)
	assert.Equal(t, "new", deltas[1].AccountID)
}

func TestAccountDrift_Drifted(t *testing.T) {
	d := domain.AccountDrift{
		StoredBalance:      decimal.NewFromInt(10),
		ExpectedBalance:    decimal.NewFromInt(10),
		StoredCommitment:   decimal.NewFromInt(-5),
		ExpectedCommitment: decimal.NewFromInt(-5),
	}
	assert.False(t, d.Drifted())
	d.ExpectedCommitment = decimal.Zero
	assert.True(t, d.Drifted())
}

func TestSplitDelta(t *testing.T) {
	small := decimal.RequireFromString("-12.34")
	assert.Equal(t, []decimal.Decimal{small}, domain.SplitDelta(small))

	// Flipping a maximal income into a maximal expense.
	twice := domain.MaxAmount.Mul(decimal.NewFromInt(2)).Neg()
	parts := domain.SplitDelta(twice)
	require.Len(t, parts, 2)
	sum := decimal.Zero
	for _, p := range parts {
		assert.True(t, p.Abs().LessThanOrEqual(domain.MaxAmount))
		sum = sum.Add(p)
	}
	assert.True(t, twice.Equal(sum))
}
