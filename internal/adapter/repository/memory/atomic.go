package memory

import (
	"context"

	"github.com/api-sage/core-banking-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking-service/internal/domain"
	"github.com/shopspring/decimal"
)

type AtomicRunner struct {
	store *Store
}

func NewAtomicRunner(store *Store) *AtomicRunner {
	return &AtomicRunner{store: store}
}

// RunAtomic holds the store mutex for the whole unit and restores a snapshot
// if the unit fails, so partial effects are never observable.
func (r *AtomicRunner) RunAtomic(_ context.Context, fn func(ops repo_interfaces.AtomicOps) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.snapshotLocked()
	if err := fn(&atomicOps{store: r.store}); err != nil {
		r.store.restoreLocked(snap)
		return err
	}

	return nil
}

// atomicOps must only be used while the runner holds the store mutex.
type atomicOps struct {
	store *Store
}

func (o *atomicOps) GetAccountForUpdate(_ context.Context, accountID string) (domain.Account, error) {
	return o.store.getAccountLocked(accountID)
}

func (o *atomicOps) AdjustBalance(_ context.Context, accountID string, delta decimal.Decimal) (decimal.Decimal, error) {
	return o.store.adjustBalanceLocked(accountID, delta)
}

func (o *atomicOps) AppendTransaction(_ context.Context, txn domain.Transaction) (domain.Transaction, error) {
	return o.store.appendTransactionLocked(txn)
}

func (o *atomicOps) GetTransactionForUpdate(_ context.Context, transactionID string) (domain.Transaction, error) {
	return o.store.getTransactionLocked(transactionID)
}

func (o *atomicOps) CountApprovedLoans(_ context.Context, accountID string) (int, error) {
	return o.store.countApprovedLoansLocked(accountID), nil
}

func (o *atomicOps) MarkLoanPaid(_ context.Context, transactionID string, balanceAfter decimal.Decimal) error {
	return o.store.markLoanPaidLocked(transactionID, balanceAfter)
}
