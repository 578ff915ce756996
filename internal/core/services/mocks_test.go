package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/finance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) IncrementBalance(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, accountID, delta, now)
	return args.Error(0)
}

func (m *MockAccountRepository) IncrementCommitment(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, accountID, delta, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SumLedgerByAccount(ctx context.Context, accountID string) (domain.LedgerTotals, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(domain.LedgerTotals), args.Error(1)
}

func (m *MockAccountRepository) SetAccountTotals(ctx context.Context, totals domain.LedgerTotals, now time.Time) error {
	args := m.Called(ctx, totals, now)
	return args.Error(0)
}

// MockCategoryRepository is a mock type for the CategoryRepositoryFacade interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	return m.Called(ctx, categoryID).Error(0)
}

// MockCommitmentRepository is a mock type for the CommitmentRepositoryFacade interface
type MockCommitmentRepository struct {
	mock.Mock
}

func (m *MockCommitmentRepository) FindCommitmentByID(ctx context.Context, commitmentID string) (*domain.Commitment, error) {
	args := m.Called(ctx, commitmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commitment), args.Error(1)
}

func (m *MockCommitmentRepository) FindCommitmentByIDForUpdate(ctx context.Context, commitmentID string) (*domain.Commitment, error) {
	args := m.Called(ctx, commitmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commitment), args.Error(1)
}

func (m *MockCommitmentRepository) ListCommitmentsByAccount(ctx context.Context, accountID string, includeArchived bool) ([]domain.Commitment, error) {
	args := m.Called(ctx, accountID, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Commitment), args.Error(1)
}

func (m *MockCommitmentRepository) CountCommitmentsByCategory(ctx context.Context, categoryID string) (int, error) {
	args := m.Called(ctx, categoryID)
	return args.Int(0), args.Error(1)
}

func (m *MockCommitmentRepository) SaveCommitment(ctx context.Context, commitment domain.Commitment) error {
	return m.Called(ctx, commitment).Error(0)
}

func (m *MockCommitmentRepository) UpdateCommitment(ctx context.Context, commitment domain.Commitment) error {
	return m.Called(ctx, commitment).Error(0)
}

func (m *MockCommitmentRepository) DeleteCommitment(ctx context.Context, commitmentID string) error {
	return m.Called(ctx, commitmentID).Error(0)
}

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	return m.Called(ctx, transactionID).Error(0)
}

// fakeTxManager runs the unit of work directly against the mocks.
type fakeTxManager struct {
	repos portsrepo.RepositoryProvider
	calls int
}

func (f *fakeTxManager) WithinTx(_ context.Context, fn func(repos portsrepo.RepositoryProvider) error) error {
	f.calls++
	return fn(f.repos)
}

// decEq matches a decimal argument by value.
func decEq(v string) any {
	want := decimal.RequireFromString(v)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func mustDec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}
