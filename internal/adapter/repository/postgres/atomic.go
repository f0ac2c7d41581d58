package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/core-banking-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking-service/internal/domain"
	"github.com/api-sage/core-banking-service/internal/logger"
	"github.com/shopspring/decimal"
)

// AtomicRunner scopes every balance mutation and ledger write of one operation
// to a single database transaction.
type AtomicRunner struct {
	db *sql.DB
}

func NewAtomicRunner(db *sql.DB) *AtomicRunner {
	return &AtomicRunner{db: db}
}

func (r *AtomicRunner) RunAtomic(ctx context.Context, fn func(ops repo_interfaces.AtomicOps) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("atomic runner begin tx failed", err, nil)
		return fmt.Errorf("begin atomic unit: %w", err)
	}

	if err := fn(&atomicOps{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("atomic runner commit tx failed", err, nil)
		return fmt.Errorf("commit atomic unit: %w", err)
	}

	return nil
}

type atomicOps struct {
	tx *sql.Tx
}

func (o *atomicOps) GetAccountForUpdate(ctx context.Context, accountID string) (domain.Account, error) {
	return getAccount(ctx, o.tx, accountID, true)
}

func (o *atomicOps) AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal) (decimal.Decimal, error) {
	const query = `
UPDATE accounts
SET balance = balance + $2::numeric,
    updated_at = NOW()
WHERE id = $1
  AND balance + $2::numeric >= 0
RETURNING balance`

	var newBalance decimal.Decimal
	err := o.tx.QueryRowContext(ctx, query, accountID, delta).Scan(&newBalance)
	if err == nil {
		return newBalance, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		logger.Error("atomic ops adjust balance failed", err, logger.Fields{
			"accountId": accountID,
			"delta":     delta,
		})
		return decimal.Zero, fmt.Errorf("adjust balance: %w", err)
	}

	// Guard rejected the update: missing account or an overdraw attempt.
	if _, getErr := getAccount(ctx, o.tx, accountID, false); getErr != nil {
		return decimal.Zero, getErr
	}
	return decimal.Zero, domain.ErrInsufficientFunds
}

func (o *atomicOps) AppendTransaction(ctx context.Context, txn domain.Transaction) (domain.Transaction, error) {
	const query = `
INSERT INTO transactions (
	account_id,
	recipient_account_id,
	transaction_type,
	amount,
	balance_after,
	loan_approved
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`

	if err := o.tx.QueryRowContext(
		ctx,
		query,
		txn.AccountID,
		txn.RecipientAccountID,
		txn.Type,
		txn.Amount,
		txn.BalanceAfter,
		txn.LoanApproved,
	).Scan(&txn.ID, &txn.Timestamp); err != nil {
		logger.Error("atomic ops append transaction failed", err, logger.Fields{
			"accountId":       txn.AccountID,
			"transactionType": txn.Type,
		})
		return domain.Transaction{}, fmt.Errorf("append transaction: %w", err)
	}

	return txn, nil
}

func (o *atomicOps) GetTransactionForUpdate(ctx context.Context, transactionID string) (domain.Transaction, error) {
	return getTransaction(ctx, o.tx, transactionID, true)
}

func (o *atomicOps) CountApprovedLoans(ctx context.Context, accountID string) (int, error) {
	return countApprovedLoans(ctx, o.tx, accountID)
}

func (o *atomicOps) MarkLoanPaid(ctx context.Context, transactionID string, balanceAfter decimal.Decimal) error {
	const query = `
UPDATE transactions
SET transaction_type = 'LOAN_PAID',
    balance_after = $2::numeric
WHERE id = $1
  AND transaction_type = 'LOAN'
  AND loan_approved = TRUE`

	result, err := o.tx.ExecContext(ctx, query, transactionID, balanceAfter)
	if err != nil {
		logger.Error("atomic ops mark loan paid failed", err, logger.Fields{
			"transactionId": transactionID,
		})
		return fmt.Errorf("mark loan paid: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark loan paid rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if _, getErr := getTransaction(ctx, o.tx, transactionID, false); getErr != nil {
			return getErr
		}
		return domain.ErrInvalidLoanState
	}

	return nil
}
