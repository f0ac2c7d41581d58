package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/core-banking-service/internal/domain"
	"github.com/api-sage/core-banking-service/internal/logger"
	"github.com/shopspring/decimal"
)

const transactionColumns = `id, account_id, recipient_account_id, transaction_type, amount, balance_after, loan_approved, created_at`

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) GetByID(ctx context.Context, transactionID string) (domain.Transaction, error) {
	logger.Info("transaction repository get by id", logger.Fields{
		"transactionId": transactionID,
	})

	txn, err := getTransaction(ctx, r.db, transactionID, false)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			logger.Info("transaction repository record not found", logger.Fields{
				"transactionId": transactionID,
			})
			return domain.Transaction{}, err
		}
		logger.Error("transaction repository get failed", err, logger.Fields{
			"transactionId": transactionID,
		})
		return domain.Transaction{}, err
	}

	return txn, nil
}

func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, dateRange *domain.DateRange) ([]domain.Transaction, error) {
	logger.Info("transaction repository list by account", logger.Fields{
		"accountId": accountID,
		"hasRange":  dateRange != nil,
	})

	query := `
SELECT ` + transactionColumns + `
FROM transactions
WHERE account_id = $1
ORDER BY created_at DESC`
	args := []any{accountID}

	if dateRange != nil {
		query = `
SELECT ` + transactionColumns + `
FROM transactions
WHERE account_id = $1
  AND created_at::date BETWEEN $2::date AND $3::date
ORDER BY created_at DESC`
		args = append(args, dateRange.Start, dateRange.End)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("transaction repository list failed", err, logger.Fields{
			"accountId": accountID,
		})
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (r *TransactionRepository) ListLoans(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	logger.Info("transaction repository list loans", logger.Fields{
		"accountId": accountID,
	})

	const query = `
SELECT ` + transactionColumns + `
FROM transactions
WHERE account_id = $1
  AND transaction_type = 'LOAN'
ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		logger.Error("transaction repository list loans failed", err, logger.Fields{
			"accountId": accountID,
		})
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (r *TransactionRepository) SumAmount(ctx context.Context, dateRange domain.DateRange) (decimal.Decimal, error) {
	logger.Info("transaction repository sum amount", logger.Fields{
		"start": dateRange.Start,
		"end":   dateRange.End,
	})

	const query = `
SELECT COALESCE(SUM(amount), 0)
FROM transactions
WHERE created_at::date BETWEEN $1::date AND $2::date`

	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, dateRange.Start, dateRange.End).Scan(&total); err != nil {
		logger.Error("transaction repository sum amount failed", err, nil)
		return decimal.Zero, fmt.Errorf("sum transaction amounts: %w", err)
	}

	return total, nil
}

func (r *TransactionRepository) CountApprovedLoans(ctx context.Context, accountID string) (int, error) {
	return countApprovedLoans(ctx, r.db, accountID)
}

func (r *TransactionRepository) ApproveLoan(ctx context.Context, transactionID string) error {
	logger.Info("transaction repository approve loan", logger.Fields{
		"transactionId": transactionID,
	})

	const query = `
UPDATE transactions
SET loan_approved = TRUE
WHERE id = $1
  AND transaction_type = 'LOAN'
  AND loan_approved = FALSE`

	result, err := r.db.ExecContext(ctx, query, transactionID)
	if err != nil {
		logger.Error("transaction repository approve loan failed", err, logger.Fields{
			"transactionId": transactionID,
		})
		return fmt.Errorf("approve loan: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("approve loan rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if _, getErr := getTransaction(ctx, r.db, transactionID, false); getErr != nil {
			return getErr
		}
		return domain.ErrInvalidLoanState
	}

	logger.Info("transaction repository approve loan success", logger.Fields{
		"transactionId": transactionID,
	})
	return nil
}

func getTransaction(ctx context.Context, q querier, transactionID string, forUpdate bool) (domain.Transaction, error) {
	query := `
SELECT ` + transactionColumns + `
FROM transactions
WHERE id = $1`
	if forUpdate {
		query += `
FOR UPDATE`
	}

	row := q.QueryRowContext(ctx, query, transactionID)
	txn, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transaction{}, domain.ErrRecordNotFound
		}
		return domain.Transaction{}, fmt.Errorf("get transaction by id: %w", err)
	}

	return txn, nil
}

func countApprovedLoans(ctx context.Context, q querier, accountID string) (int, error) {
	const query = `
SELECT COUNT(*)
FROM transactions
WHERE account_id = $1
  AND transaction_type = 'LOAN'
  AND loan_approved = TRUE`

	var count int
	if err := q.QueryRowContext(ctx, query, accountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count approved loans: %w", err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var (
		txn       domain.Transaction
		recipient sql.NullString
	)

	if err := row.Scan(
		&txn.ID,
		&txn.AccountID,
		&recipient,
		&txn.Type,
		&txn.Amount,
		&txn.BalanceAfter,
		&txn.LoanApproved,
		&txn.Timestamp,
	); err != nil {
		return domain.Transaction{}, err
	}

	if recipient.Valid {
		value := recipient.String
		txn.RecipientAccountID = &value
	}

	return txn, nil
}

func collectTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	out := make([]domain.Transaction, 0)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return out, nil
}
