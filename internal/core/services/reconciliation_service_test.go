package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/finance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/finance_ledger/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReconciliationService_ReportsAndRepairsDrift(t *testing.T) {
	ctx := context.Background()
	accounts := new(MockAccountRepository)
	tm := &fakeTxManager{repos: portsrepo.RepositoryProvider{AccountRepo: accounts}}
	svc := services.NewReconciliationService(accounts, tm, 2)

	good := domain.Account{AccountID: "a", Name: "Good", Balance: mustDec("10"), Commitment: mustDec("-3")}
	bad := domain.Account{AccountID: "b", Name: "Bad", Balance: mustDec("99"), Commitment: mustDec("0")}
	accounts.On("ListAccounts", mock.Anything, 200, 0).Return([]domain.Account{good, bad}, nil).Once()
	accounts.On("SumLedgerByAccount", mock.Anything, "a").
		Return(domain.LedgerTotals{AccountID: "a", Balance: mustDec("10"), Commitment: mustDec("-3")}, nil)
	accounts.On("SumLedgerByAccount", mock.Anything, "b").
		Return(domain.LedgerTotals{AccountID: "b", Balance: mustDec("40"), Commitment: mustDec("0")}, nil)
	accounts.On("SetAccountTotals", ctx, mock.MatchedBy(func(lt domain.LedgerTotals) bool {
		return lt.AccountID == "b" && lt.Balance.Equal(mustDec("40"))
	}), mock.Anything).Return(nil).Once()

	report, err := svc.Reconcile(ctx, true)

	require.NoError(t, err)
	assert.Equal(t, 2, report.CheckedAccounts)
	require.Len(t, report.Drifts, 1)
	assert.Equal(t, "b", report.Drifts[0].AccountID)
	assert.True(t, mustDec("99").Equal(report.Drifts[0].StoredBalance))
	assert.True(t, report.Repaired)
	accounts.AssertExpectations(t)
}

func TestReconciliationService_DryRunDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	accounts := new(MockAccountRepository)
	tm := &fakeTxManager{repos: portsrepo.RepositoryProvider{AccountRepo: accounts}}
	svc := services.NewReconciliationService(accounts, tm, 1)

	accounts.On("ListAccounts", mock.Anything, 200, 0).
		Return([]domain.Account{{AccountID: "b", Balance: mustDec("1")}}, nil).Once()
	accounts.On("SumLedgerByAccount", mock.Anything, "b").
		Return(domain.LedgerTotals{AccountID: "b"}, nil).Once()

	report, err := svc.Reconcile(ctx, false)

	require.NoError(t, err)
	assert.Len(t, report.Drifts, 1)
	assert.False(t, report.Repaired)
	assert.Zero(t, tm.calls)
	accounts.AssertNotCalled(t, "SetAccountTotals", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconciliationService_SumFailureAborts(t *testing.T) {
	accounts := new(MockAccountRepository)
	svc := services.NewReconciliationService(accounts, &fakeTxManager{}, 4)

	accounts.On("ListAccounts", mock.Anything, 200, 0).
		Return([]domain.Account{{AccountID: "a"}}, nil).Once()
	accounts.On("SumLedgerByAccount", mock.Anything, "a").
		Return(domain.LedgerTotals{}, assert.AnError).Once()

	report, err := svc.Reconcile(context.Background(), false)

	assert.Nil(t, report)
	assert.ErrorIs(t, err, assert.AnError)
}
