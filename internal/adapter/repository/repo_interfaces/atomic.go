package repo_interfaces

import (
	"context"

	"github.com/api-sage/core-banking-service/internal/domain"
	"github.com/shopspring/decimal"
)

// AtomicOps is the mutation surface available inside one atomic unit. Every
// balance adjustment and ledger write for a single operation goes through the
// same unit so they commit or roll back together.
type AtomicOps interface {
	// GetAccountForUpdate reads the account under the unit's mutation scope
	// (a row lock in the SQL store).
	GetAccountForUpdate(ctx context.Context, accountID string) (domain.Account, error)
	// AdjustBalance applies the delta and returns the resulting balance.
	// Adjustments that would leave the balance negative fail with
	// domain.ErrInsufficientFunds.
	AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal) (decimal.Decimal, error)
	AppendTransaction(ctx context.Context, txn domain.Transaction) (domain.Transaction, error)
	GetTransactionForUpdate(ctx context.Context, transactionID string) (domain.Transaction, error)
	CountApprovedLoans(ctx context.Context, accountID string) (int, error)
	// MarkLoanPaid is the ledger's sole mutation path: re-tags an approved
	// LOAN row to LOAN_PAID and records the balance snapshot.
	MarkLoanPaid(ctx context.Context, transactionID string, balanceAfter decimal.Decimal) error
}

type AtomicRunner interface {
	RunAtomic(ctx context.Context, fn func(ops AtomicOps) error) error
}
