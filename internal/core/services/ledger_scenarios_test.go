package services_test

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/finance_ledger/internal/apperrors"
	"github.com/SscSPs/finance_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/finance_ledger/internal/core/ports/services"
	"github.com/SscSPs/finance_ledger/internal/core/services"
	"github.com/SscSPs/finance_ledger/internal/dto"
	"github.com/SscSPs/finance_ledger/internal/platform/config"
	"github.com/SscSPs/finance_ledger/internal/platform/metrics"
	"github.com/SscSPs/finance_ledger/internal/repositories/database/migrations"
	"github.com/SscSPs/finance_ledger/internal/repositories/database/sqlite"
	"github.com/SscSPs/finance_ledger/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// LedgerScenarioSuite drives the services against a real SQLite database.
type LedgerScenarioSuite struct {
	suite.Suite
	ctx context.Context
	svc *portssvc.ServiceContainer
	rec *metrics.Recorder
	cfg *config.Config
}

func TestLedgerScenarioSuite(t *testing.T) {
	suite.Run(t, new(LedgerScenarioSuite))
}

func (s *LedgerScenarioSuite) SetupTest() {
	s.ctx = context.Background()
	db, err := database.OpenSQLite(s.ctx, filepath.Join(s.T().TempDir(), "ledger.db"))
	s.Require().NoError(err)
	s.T().Cleanup(func() { db.Close() })

	_, err = migrations.Up(db, migrations.SQLite)
	s.Require().NoError(err)

	s.cfg = &config.Config{DefaultPageSize: 50, ReconcileConcurrency: 2}
	s.rec = metrics.NewRecorder()
	s.svc = services.NewServiceContainer(s.cfg, sqlite.NewRepositoryProvider(db), sqlite.NewTransactionManager(db),
		services.WithMetrics(s.rec))
}

func (s *LedgerScenarioSuite) account(name string) *domain.Account {
	acc, err := s.svc.Account.CreateAccount(s.ctx, dto.CreateAccountRequest{Name: name})
	s.Require().NoError(err)
	return acc
}

func (s *LedgerScenarioSuite) category(name string) *domain.Category {
	c, err := s.svc.Category.CreateCategory(s.ctx, dto.CreateCategoryRequest{Name: name})
	s.Require().NoError(err)
	return c
}

func (s *LedgerScenarioSuite) record(req dto.RecordTransactionRequest) *domain.Transaction {
	txn, err := s.svc.Transaction.RecordTransaction(s.ctx, req)
	s.Require().NoError(err)
	return txn
}

func (s *LedgerScenarioSuite) assertTotals(accountID, balance, commitment string) {
	acc, err := s.svc.Account.GetAccountByID(s.ctx, accountID)
	s.Require().NoError(err)
	s.True(mustDec(balance).Equal(acc.Balance), "balance: want %s got %s", balance, acc.Balance)
	s.True(mustDec(commitment).Equal(acc.Commitment), "commitment: want %s got %s", commitment, acc.Commitment)
}

func (s *LedgerScenarioSuite) TestIncomeThenExpense() {
	x := s.account("X")
	s.assertTotals(x.AccountID, "0", "0")

	s.record(dto.RecordTransactionRequest{AccountID: x.AccountID, Amount: mustDec("50"), TransactionType: domain.Income})
	s.assertTotals(x.AccountID, "50", "0")

	s.record(dto.RecordTransactionRequest{AccountID: x.AccountID, Amount: mustDec("20"), TransactionType: domain.Expense})
	s.assertTotals(x.AccountID, "30", "0")
}

func (s *LedgerScenarioSuite) TestUpdateAmountAppliesDifference() {
	x := s.account("X")
	t1 := s.record(dto.RecordTransactionRequest{AccountID: x.AccountID, Amount: mustDec("50"), TransactionType: domain.Income})

	s.record(dto.RecordTransactionRequest{TransactionID: &t1.TransactionID, AccountID: x.AccountID, Amount: mustDec("80"), TransactionType: domain.Income})
	s.assertTotals(x.AccountID, "80", "0")
}

func (s *LedgerScenarioSuite) TestReassignToAnotherAccount() {
	x := s.account("X")
	y := s.account("Y")
	t1 := s.record(dto.RecordTransactionRequest{AccountID: x.AccountID, Amount: mustDec("50"), TransactionType: domain.Income})

	moved := s.record(dto.RecordTransactionRequest{TransactionID: &t1.TransactionID, AccountID: y.AccountID, Amount: mustDec("50"), TransactionType: domain.Income})
	s.Equal(t1.TransactionID, moved.TransactionID)
	s.assertTotals(x.AccountID, "0", "0")
	s.assertTotals(y.AccountID, "50", "0")
}

func (s *LedgerScenarioSuite) TestDeleteTransaction() {
	x := s.account("X")
	t1 := s.record(dto.RecordTransactionRequest{AccountID: x.AccountID, Amount: mustDec("50"), TransactionType: domain.Income})

	s.Require().NoError(s.svc.Transaction.DeleteTransaction(s.ctx, t1.TransactionID))
	s.assertTotals(x.AccountID, "0", "0")

	_, err := s.svc.Transaction.GetTransactionByID(s.ctx, t1.TransactionID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerScenarioSuite) TestResaveIsIdempotent() {
	x := s.account("X")
	t1 := s.record(dto.RecordTransactionRequest{AccountID: x.AccountID, Amount: mustDec("12.34"), TransactionType: domain.Expense})

	for i := 0; i < 3; i++ {
		s.record(dto.RecordTransactionRequest{
			TransactionID:   &t1.TransactionID,
			AccountID:       x.AccountID,
			Amount:          mustDec("12.34"),
			TransactionType: domain.Expense,
			Description:     "edited",
		})
	}
	s.assertTotals(x.AccountID, "-12.34", "0")
}

func (s *LedgerScenarioSuite) TestCommitmentLifecycle() {
	x := s.account("X")
	y := s.account("Y")
	rent := s.category("Rent")
	due := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	c, err := s.svc.Commitment.RecordCommitment(s.ctx, dto.RecordCommitmentRequest{
		AccountID: x.AccountID, CategoryID: rent.CategoryID, Amount: mustDec("300"),
		TransactionType: domain.Expense, ExpectedDate: due,
	})
	s.Require().NoError(err)
	s.assertTotals(x.AccountID, "0", "-300")

	// Archiving keeps it in the total.
	_, err = s.svc.Commitment.RecordCommitment(s.ctx, dto.RecordCommitmentRequest{
		CommitmentID: &c.CommitmentID, AccountID: x.AccountID, CategoryID: rent.CategoryID, Amount: mustDec("300"),
		TransactionType: domain.Expense, ExpectedDate: due, Archived: true,
	})
	s.Require().NoError(err)
	s.assertTotals(x.AccountID, "0", "-300")

	// Moving uses the commitment's own prior value on the old account.
	_, err = s.svc.Commitment.RecordCommitment(s.ctx, dto.RecordCommitmentRequest{
		CommitmentID: &c.CommitmentID, AccountID: y.AccountID, CategoryID: rent.CategoryID, Amount: mustDec("250"),
		TransactionType: domain.Expense, ExpectedDate: due,
	})
	s.Require().NoError(err)
	s.assertTotals(x.AccountID, "0", "0")
	s.assertTotals(y.AccountID, "0", "-250")

	s.Require().NoError(s.svc.Commitment.DeleteCommitment(s.ctx, c.CommitmentID))
	s.assertTotals(y.AccountID, "0", "0")
}

func (s *LedgerScenarioSuite) TestClosedAccountRejectsNewRecords() {
	x := s.account("X")
	closed := true
	_, err := s.svc.Account.UpdateAccount(s.ctx, x.AccountID, dto.UpdateAccountRequest{Closed: &closed})
	s.Require().NoError(err)

	_, err = s.svc.Transaction.RecordTransaction(s.ctx, dto.RecordTransactionRequest{
		AccountID: x.AccountID, Amount: mustDec("1"), TransactionType: domain.Income,
	})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.assertTotals(x.AccountID, "0", "0")
}

func (s *LedgerScenarioSuite) TestClosedAccountKeepsExistingRecordsEditable() {
	x := s.account("X")
	rent := s.category("Rent")
	due := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	c, err := s.svc.Commitment.RecordCommitment(s.ctx, dto.RecordCommitmentRequest{
		AccountID: x.AccountID, CategoryID: rent.CategoryID, Amount: mustDec("300"),
		TransactionType: domain.Expense, ExpectedDate: due,
	})
	s.Require().NoError(err)
	txn := s.record(dto.RecordTransactionRequest{
		AccountID: x.AccountID, Amount: mustDec("40"), TransactionType: domain.Income,
	})

	closed := true
	_, err = s.svc.Account.UpdateAccount(s.ctx, x.AccountID, dto.UpdateAccountRequest{Closed: &closed})
	s.Require().NoError(err)

	archived, err := s.svc.Commitment.RecordCommitment(s.ctx, dto.RecordCommitmentRequest{
		CommitmentID: &c.CommitmentID, AccountID: x.AccountID, CategoryID: rent.CategoryID, Amount: mustDec("300"),
		TransactionType: domain.Expense, ExpectedDate: due, Archived: true,
	})
	s.Require().NoError(err)
	s.True(archived.Archived)

	_, err = s.svc.Transaction.RecordTransaction(s.ctx, dto.RecordTransactionRequest{
		TransactionID: &txn.TransactionID, AccountID: x.AccountID, Amount: mustDec("40"),
		TransactionType: domain.Income, Description: "salary",
	})
	s.Require().NoError(err)

	_, err = s.svc.Commitment.RecordCommitment(s.ctx, dto.RecordCommitmentRequest{
		CommitmentID: &c.CommitmentID, AccountID: x.AccountID, CategoryID: rent.CategoryID, Amount: mustDec("350"),
		TransactionType: domain.Expense, ExpectedDate: due, Archived: true,
	})
	s.ErrorIs(err, apperrors.ErrValidation)
	_, err = s.svc.Transaction.RecordTransaction(s.ctx, dto.RecordTransactionRequest{
		TransactionID: &txn.TransactionID, AccountID: x.AccountID, Amount: mustDec("40"),
		TransactionType: domain.Expense,
	})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.assertTotals(x.AccountID, "40", "-300")
}

func (s *LedgerScenarioSuite) TestOversizedAmountsAreRejected() {
	x := s.account("X")
	rent := s.category("Rent")
	huge := mustDec("184467440737095566.16")

	_, err := s.svc.Transaction.RecordTransaction(s.ctx, dto.RecordTransactionRequest{
		AccountID: x.AccountID, Amount: huge, TransactionType: domain.Income,
	})
	s.ErrorIs(err, apperrors.ErrValidation)
	_, err = s.svc.Commitment.RecordCommitment(s.ctx, dto.RecordCommitmentRequest{
		AccountID: x.AccountID, CategoryID: rent.CategoryID, Amount: huge,
		TransactionType: domain.Expense, ExpectedDate: time.Now(),
	})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.assertTotals(x.AccountID, "0", "0")
}

func (s *LedgerScenarioSuite) TestFlippingTheLargestAmount() {
	x := s.account("X")
	txn := s.record(dto.RecordTransactionRequest{
		AccountID: x.AccountID, Amount: domain.MaxAmount, TransactionType: domain.Income,
	})
	s.assertTotals(x.AccountID, domain.MaxAmount.String(), "0")

	s.record(dto.RecordTransactionRequest{
		TransactionID: &txn.TransactionID, AccountID: x.AccountID, Amount: domain.MaxAmount,
		TransactionType: domain.Expense,
	})
	s.assertTotals(x.AccountID, domain.MaxAmount.Neg().String(), "0")

	_, err := s.svc.Transaction.RecordTransaction(s.ctx, dto.RecordTransactionRequest{
		AccountID: x.AccountID, Amount: mustDec("0.02"), TransactionType: domain.Expense,
	})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.assertTotals(x.AccountID, domain.MaxAmount.Neg().String(), "0")
}

func (s *LedgerScenarioSuite) TestCategoryReferencePolicy() {
	x := s.account("X")
	rent := s.category("Rent")
	food := s.category("Food")

	c, err := s.svc.Commitment.RecordCommitment(s.ctx, dto.RecordCommitmentRequest{
		AccountID: x.AccountID, CategoryID: rent.CategoryID, Amount: mustDec("10"),
		TransactionType: domain.Expense, ExpectedDate: time.Now(),
	})
	s.Require().NoError(err)
	txn := s.record(dto.RecordTransactionRequest{
		AccountID: x.AccountID, CategoryID: &food.CategoryID, CommitmentID: &c.CommitmentID,
		Amount: mustDec("10"), TransactionType: domain.Expense,
	})

	s.ErrorIs(s.svc.Category.DeleteCategory(s.ctx, rent.CategoryID), apperrors.ErrConflict)
	s.Require().NoError(s.svc.Category.DeleteCategory(s.ctx, food.CategoryID))
	s.Require().NoError(s.svc.Commitment.DeleteCommitment(s.ctx, c.CommitmentID))

	got, err := s.svc.Transaction.GetTransactionByID(s.ctx, txn.TransactionID)
	s.Require().NoError(err)
	s.Nil(got.CategoryID)
	s.Nil(got.CommitmentID)
	s.assertTotals(x.AccountID, "-10", "0")
}

func (s *LedgerScenarioSuite) TestFailedSaveLeavesTotalsUntouched() {
	x := s.account("X")
	missing := "5b0c9d52-4f3e-4d7a-9a54-0c1f0d1f7a11"

	_, err := s.svc.Transaction.RecordTransaction(s.ctx, dto.RecordTransactionRequest{
		AccountID: x.AccountID, CategoryID: &missing, Amount: mustDec("99"), TransactionType: domain.Income,
	})
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.assertTotals(x.AccountID, "0", "0")
}

func (s *LedgerScenarioSuite) TestPagination() {
	x := s.account("X")
	for i := 0; i < 5; i++ {
		s.record(dto.RecordTransactionRequest{AccountID: x.AccountID, Amount: decimal.NewFromInt(int64(i + 1)), TransactionType: domain.Income})
	}

	seen := map[string]bool{}
	params := dto.ListTransactionsParams{Limit: 2}
	for pages := 0; pages < 5; pages++ {
		resp, err := s.svc.Transaction.ListTransactionsByAccount(s.ctx, x.AccountID, params)
		s.Require().NoError(err)
		for _, t := range resp.Transactions {
			s.False(seen[t.TransactionID], "transaction listed twice")
			seen[t.TransactionID] = true
		}
		if resp.NextToken == nil {
			break
		}
		params.NextToken = resp.NextToken
	}
	s.Len(seen, 5)
}

// TestRandomSequencesKeepTotalsInSync checks that, after any mix of creates,
// updates, moves and deletes, each account total equals the sum of its live records.
func (s *LedgerScenarioSuite) TestRandomSequencesKeepTotalsInSync() {
	rng := rand.New(rand.NewPCG(42, 2026))
	accounts := []*domain.Account{s.account("A"), s.account("B"), s.account("C")}
	cat := s.category("Misc")
	due := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	var txnIDs, commitmentIDs []string
	randomType := func() domain.TransactionType {
		if rng.IntN(2) == 0 {
			return domain.Income
		}
		return domain.Expense
	}
	randomAmount := func() decimal.Decimal { return decimal.New(rng.Int64N(100000), -2) }

	for step := 0; step < 150; step++ {
		acc := accounts[rng.IntN(len(accounts))]
		switch rng.IntN(6) {
		case 0, 1:
			req := dto.RecordTransactionRequest{AccountID: acc.AccountID, Amount: randomAmount(), TransactionType: randomType()}
			if len(txnIDs) > 0 && rng.IntN(2) == 0 {
				req.TransactionID = &txnIDs[rng.IntN(len(txnIDs))]
			}
			t := s.record(req)
			if req.TransactionID == nil {
				txnIDs = append(txnIDs, t.TransactionID)
			}
		case 2:
			if len(txnIDs) == 0 {
				continue
			}
			i := rng.IntN(len(txnIDs))
			s.Require().NoError(s.svc.Transaction.DeleteTransaction(s.ctx, txnIDs[i]))
			txnIDs = append(txnIDs[:i], txnIDs[i+1:]...)
		case 3, 4:
			req := dto.RecordCommitmentRequest{
				AccountID: acc.AccountID, CategoryID: cat.CategoryID, Amount: randomAmount(),
				TransactionType: randomType(), ExpectedDate: due, Archived: rng.IntN(4) == 0,
			}
			if len(commitmentIDs) > 0 && rng.IntN(2) == 0 {
				req.CommitmentID = &commitmentIDs[rng.IntN(len(commitmentIDs))]
			}
			c, err := s.svc.Commitment.RecordCommitment(s.ctx, req)
			s.Require().NoError(err)
			if req.CommitmentID == nil {
				commitmentIDs = append(commitmentIDs, c.CommitmentID)
			}
		case 5:
			if len(commitmentIDs) == 0 {
				continue
			}
			i := rng.IntN(len(commitmentIDs))
			s.Require().NoError(s.svc.Commitment.DeleteCommitment(s.ctx, commitmentIDs[i]))
			commitmentIDs = append(commitmentIDs[:i], commitmentIDs[i+1:]...)
		}
	}

	report, err := s.svc.Reconciliation.Reconcile(s.ctx, false)
	s.Require().NoError(err)
	s.Equal(len(accounts), report.CheckedAccounts)
	s.Empty(report.Drifts)
}

func (s *LedgerScenarioSuite) TestReconcileRepairsDrift() {
	x := s.account("X")
	s.record(dto.RecordTransactionRequest{AccountID: x.AccountID, Amount: mustDec("50"), TransactionType: domain.Income})

	// A direct increment with no record behind it.
	s.Require().NoError(s.svc.Ledger.IncrementBalance(s.ctx, x.AccountID, mustDec("7")))
	s.assertTotals(x.AccountID, "57", "0")

	report, err := s.svc.Reconciliation.Reconcile(s.ctx, true)
	s.Require().NoError(err)
	s.Require().Len(report.Drifts, 1)
	s.True(report.Repaired)
	s.assertTotals(x.AccountID, "50", "0")

	again, err := s.svc.Reconciliation.Reconcile(s.ctx, false)
	s.Require().NoError(err)
	s.Empty(again.Drifts)
}

func (s *LedgerScenarioSuite) TestDeleteAccountCascades() {
	x := s.account("X")
	t1 := s.record(dto.RecordTransactionRequest{AccountID: x.AccountID, Amount: mustDec("5"), TransactionType: domain.Income})

	s.Require().NoError(s.svc.Account.DeleteAccount(s.ctx, x.AccountID))

	_, err := s.svc.Transaction.GetTransactionByID(s.ctx, t1.TransactionID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}
