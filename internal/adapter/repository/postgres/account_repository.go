package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/core-banking-service/internal/domain"
	"github.com/api-sage/core-banking-service/internal/logger"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByID(ctx context.Context, accountID string) (domain.Account, error) {
	logger.Info("account repository get by id", logger.Fields{
		"accountId": accountID,
	})

	account, err := getAccount(ctx, r.db, accountID, false)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			logger.Info("account repository record not found", logger.Fields{
				"accountId": accountID,
			})
			return domain.Account{}, err
		}
		logger.Error("account repository get failed", err, logger.Fields{
			"accountId": accountID,
		})
		return domain.Account{}, err
	}

	return account, nil
}

func getAccount(ctx context.Context, q querier, accountID string, forUpdate bool) (domain.Account, error) {
	query := `
SELECT id, user_id, balance, created_at, updated_at
FROM accounts
WHERE id = $1`
	if forUpdate {
		query += `
FOR UPDATE`
	}

	var account domain.Account
	if err := q.QueryRowContext(ctx, query, accountID).Scan(
		&account.ID,
		&account.UserID,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	return account, nil
}
