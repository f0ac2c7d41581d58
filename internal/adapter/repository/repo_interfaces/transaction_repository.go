package repo_interfaces

import (
	"context"

	"github.com/api-sage/core-banking-service/internal/domain"
	"github.com/shopspring/decimal"
)

type TransactionRepository interface {
	GetByID(ctx context.Context, transactionID string) (domain.Transaction, error)
	// ListByAccount returns the account's transactions most-recent-first,
	// optionally filtered by calendar date, inclusive on both ends.
	ListByAccount(ctx context.Context, accountID string, dateRange *domain.DateRange) ([]domain.Transaction, error)
	ListLoans(ctx context.Context, accountID string) ([]domain.Transaction, error)
	// SumAmount aggregates over all accounts in the range, not just the
	// requesting one. Callers must label the figure accordingly.
	SumAmount(ctx context.Context, dateRange domain.DateRange) (decimal.Decimal, error)
	CountApprovedLoans(ctx context.Context, accountID string) (int, error)
	// ApproveLoan is the external approval step: marks a pending LOAN row
	// eligible for payoff. The row's type must still be LOAN and not yet
	// approved.
	ApproveLoan(ctx context.Context, transactionID string) error
}
