package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/core-banking-service/internal/adapter/repository/memory"
	"github.com/api-sage/core-banking-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestStoreAdjustBalanceRejectsOverdraft(t *testing.T) {
	store := memory.NewStore()
	account := store.SeedAccount("alice@example.com", decimal.NewFromInt(100))

	err := memory.NewAtomicRunner(store).RunAtomic(context.Background(), func(ops repo_interfaces.AtomicOps) error {
		_, err := ops.AdjustBalance(context.Background(), account.ID, decimal.NewFromInt(-150))
		return err
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	got, err := memory.NewAccountRepository(store).GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	require.True(t, got.Balance.Equal(decimal.NewFromInt(100)))
}

func TestStoreRunAtomicRollsBackOnError(t *testing.T) {
	store := memory.NewStore()
	account := store.SeedAccount("alice@example.com", decimal.NewFromInt(100))

	err := memory.NewAtomicRunner(store).RunAtomic(context.Background(), func(ops repo_interfaces.AtomicOps) error {
		if _, err := ops.AdjustBalance(context.Background(), account.ID, decimal.NewFromInt(50)); err != nil {
			return err
		}
		if _, err := ops.AppendTransaction(context.Background(), domain.Transaction{
			AccountID:    account.ID,
			Type:         domain.TransactionTypeDeposit,
			Amount:       decimal.NewFromInt(50),
			BalanceAfter: decimal.NewFromInt(150),
		}); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	got, err := memory.NewAccountRepository(store).GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	require.True(t, got.Balance.Equal(decimal.NewFromInt(100)))
	require.Equal(t, 0, store.TransactionCount())
}

func TestStoreUnknownAccount(t *testing.T) {
	store := memory.NewStore()

	_, err := memory.NewAccountRepository(store).GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	err = memory.NewAtomicRunner(store).RunAtomic(context.Background(), func(ops repo_interfaces.AtomicOps) error {
		_, err := ops.AppendTransaction(context.Background(), domain.Transaction{AccountID: "missing"})
		return err
	})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestTransactionRepositoryApproveLoan(t *testing.T) {
	store := memory.NewStore()
	account := store.SeedAccount("alice@example.com", decimal.NewFromInt(100))
	repo := memory.NewTransactionRepository(store)

	var loan domain.Transaction
	err := memory.NewAtomicRunner(store).RunAtomic(context.Background(), func(ops repo_interfaces.AtomicOps) error {
		var err error
		loan, err = ops.AppendTransaction(context.Background(), domain.Transaction{
			AccountID:    account.ID,
			Type:         domain.TransactionTypeLoan,
			Amount:       decimal.NewFromInt(40),
			BalanceAfter: decimal.NewFromInt(100),
		})
		return err
	})
	require.NoError(t, err)

	count, err := repo.CountApprovedLoans(context.Background(), account.ID)
	require.NoError(t, err)
	require.Equal(t, 0, count)

	require.NoError(t, repo.ApproveLoan(context.Background(), loan.ID))

	count, err = repo.CountApprovedLoans(context.Background(), account.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	// Approval is not repeatable.
	require.ErrorIs(t, repo.ApproveLoan(context.Background(), loan.ID), domain.ErrInvalidLoanState)
	// Only LOAN rows can be approved.
	require.ErrorIs(t, repo.ApproveLoan(context.Background(), "missing"), domain.ErrRecordNotFound)
}

func TestAtomicOpsMarkLoanPaidRequiresApprovedLoan(t *testing.T) {
	store := memory.NewStore()
	account := store.SeedAccount("alice@example.com", decimal.NewFromInt(100))
	runner := memory.NewAtomicRunner(store)

	var loan domain.Transaction
	err := runner.RunAtomic(context.Background(), func(ops repo_interfaces.AtomicOps) error {
		var err error
		loan, err = ops.AppendTransaction(context.Background(), domain.Transaction{
			AccountID:    account.ID,
			Type:         domain.TransactionTypeLoan,
			Amount:       decimal.NewFromInt(40),
			BalanceAfter: decimal.NewFromInt(100),
		})
		return err
	})
	require.NoError(t, err)

	err = runner.RunAtomic(context.Background(), func(ops repo_interfaces.AtomicOps) error {
		return ops.MarkLoanPaid(context.Background(), loan.ID, decimal.NewFromInt(60))
	})
	require.ErrorIs(t, err, domain.ErrInvalidLoanState)

	repo := memory.NewTransactionRepository(store)
	require.NoError(t, repo.ApproveLoan(context.Background(), loan.ID))

	err = runner.RunAtomic(context.Background(), func(ops repo_interfaces.AtomicOps) error {
		return ops.MarkLoanPaid(context.Background(), loan.ID, decimal.NewFromInt(60))
	})
	require.NoError(t, err)

	paid, err := repo.GetByID(context.Background(), loan.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TransactionTypeLoanPaid, paid.Type)
	require.True(t, paid.BalanceAfter.Equal(decimal.NewFromInt(60)))
}
