package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/finance_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/finance_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/finance_ledger/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLedgerService_Increments(t *testing.T) {
	ctx := context.Background()
	accounts := new(MockAccountRepository)
	tm := &fakeTxManager{repos: portsrepo.RepositoryProvider{AccountRepo: accounts}}
	svc := services.NewLedgerService(tm, services.WithClock(func() time.Time { return fixedNow }))
	id := uuid.NewString()

	accounts.On("IncrementBalance", ctx, id, decEq("12.34"), fixedNow).Return(nil).Once()
	accounts.On("IncrementCommitment", ctx, id, decEq("-5"), fixedNow).Return(nil).Once()

	require.NoError(t, svc.IncrementBalance(ctx, id, mustDec("12.34")))
	require.NoError(t, svc.IncrementCommitment(ctx, id, mustDec("-5")))
	accounts.AssertExpectations(t)
}

func TestLedgerService_ZeroDeltaIsNoop(t *testing.T) {
	accounts := new(MockAccountRepository)
	tm := &fakeTxManager{repos: portsrepo.RepositoryProvider{AccountRepo: accounts}}
	svc := services.NewLedgerService(tm)

	require.NoError(t, svc.IncrementBalance(context.Background(), uuid.NewString(), mustDec("0")))
	assert.Zero(t, tm.calls)
}

func TestLedgerService_MissingAccount(t *testing.T) {
	ctx := context.Background()
	accounts := new(MockAccountRepository)
	tm := &fakeTxManager{repos: portsrepo.RepositoryProvider{AccountRepo: accounts}}
	svc := services.NewLedgerService(tm)
	id := uuid.NewString()

	accounts.On("IncrementBalance", ctx, id, decEq("1"), mock.Anything).Return(apperrors.ErrNotFound).Once()

	assert.ErrorIs(t, svc.IncrementBalance(ctx, id, mustDec("1")), apperrors.ErrNotFound)
}

func TestLedgerService_RejectsSubCent(t *testing.T) {
	tm := &fakeTxManager{}
	svc := services.NewLedgerService(tm)

	err := svc.IncrementBalance(context.Background(), uuid.NewString(), mustDec("0.001"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Zero(t, tm.calls)
}
