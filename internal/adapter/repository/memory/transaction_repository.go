package memory

import (
	"context"

	"github.com/api-sage/core-banking-service/internal/domain"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	store *Store
}

func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

func (r *TransactionRepository) GetByID(_ context.Context, transactionID string) (domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.getTransactionLocked(transactionID)
}

func (r *TransactionRepository) ListByAccount(_ context.Context, accountID string, dateRange *domain.DateRange) ([]domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.listByAccountLocked(accountID, dateRange, false), nil
}

func (r *TransactionRepository) ListLoans(_ context.Context, accountID string) ([]domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.listByAccountLocked(accountID, nil, true), nil
}

func (r *TransactionRepository) SumAmount(_ context.Context, dateRange domain.DateRange) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.sumAmountLocked(dateRange), nil
}

func (r *TransactionRepository) CountApprovedLoans(_ context.Context, accountID string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.countApprovedLoansLocked(accountID), nil
}

func (r *TransactionRepository) ApproveLoan(_ context.Context, transactionID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	txn, err := r.store.getTransactionLocked(transactionID)
	if err != nil {
		return err
	}
	if txn.Type != domain.TransactionTypeLoan || txn.LoanApproved {
		return domain.ErrInvalidLoanState
	}

	txn.LoanApproved = true
	r.store.txns[transactionID] = txn
	return nil
}
