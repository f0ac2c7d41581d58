// Package memory is an in-process store used by tests and local development.
// One store mutex serializes every atomic unit, so per-account linearization
// holds trivially; rollback restores a pre-unit snapshot.
package memory

import (
	"sync"
	"time"

	"github.com/api-sage/core-banking-service/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Store struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
	txns     map[string]domain.Transaction
	order    []string
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]domain.Account),
		txns:     make(map[string]domain.Transaction),
	}
}

func (s *Store) SeedAccount(userID string, balance decimal.Decimal) domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	account := domain.Account{
		ID:        uuid.NewString(),
		UserID:    userID,
		Balance:   balance,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.accounts[account.ID] = account
	return account
}

func (s *Store) TransactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txns)
}

func (s *Store) snapshotLocked() storeSnapshot {
	snap := storeSnapshot{
		accounts: make(map[string]domain.Account, len(s.accounts)),
		txns:     make(map[string]domain.Transaction, len(s.txns)),
		order:    make([]string, len(s.order)),
	}
	for id, account := range s.accounts {
		snap.accounts[id] = account
	}
	for id, txn := range s.txns {
		snap.txns[id] = txn
	}
	copy(snap.order, s.order)
	return snap
}

func (s *Store) restoreLocked(snap storeSnapshot) {
	s.accounts = snap.accounts
	s.txns = snap.txns
	s.order = snap.order
}

type storeSnapshot struct {
	accounts map[string]domain.Account
	txns     map[string]domain.Transaction
	order    []string
}

func (s *Store) getAccountLocked(accountID string) (domain.Account, error) {
	account, ok := s.accounts[accountID]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return account, nil
}

func (s *Store) adjustBalanceLocked(accountID string, delta decimal.Decimal) (decimal.Decimal, error) {
	account, ok := s.accounts[accountID]
	if !ok {
		return decimal.Zero, domain.ErrAccountNotFound
	}

	newBalance := account.Balance.Add(delta)
	if newBalance.IsNegative() {
		return decimal.Zero, domain.ErrInsufficientFunds
	}

	account.Balance = newBalance
	account.UpdatedAt = time.Now().UTC()
	s.accounts[accountID] = account
	return newBalance, nil
}

func (s *Store) appendTransactionLocked(txn domain.Transaction) (domain.Transaction, error) {
	if _, ok := s.accounts[txn.AccountID]; !ok {
		return domain.Transaction{}, domain.ErrAccountNotFound
	}

	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	if txn.Timestamp.IsZero() {
		txn.Timestamp = time.Now().UTC()
	}

	s.txns[txn.ID] = txn
	s.order = append(s.order, txn.ID)
	return txn, nil
}

func (s *Store) getTransactionLocked(transactionID string) (domain.Transaction, error) {
	txn, ok := s.txns[transactionID]
	if !ok {
		return domain.Transaction{}, domain.ErrRecordNotFound
	}
	return txn, nil
}

func (s *Store) countApprovedLoansLocked(accountID string) int {
	count := 0
	for _, txn := range s.txns {
		if txn.AccountID == accountID && txn.Type == domain.TransactionTypeLoan && txn.LoanApproved {
			count++
		}
	}
	return count
}

func (s *Store) markLoanPaidLocked(transactionID string, balanceAfter decimal.Decimal) error {
	txn, ok := s.txns[transactionID]
	if !ok {
		return domain.ErrRecordNotFound
	}
	if txn.Type != domain.TransactionTypeLoan || !txn.LoanApproved {
		return domain.ErrInvalidLoanState
	}

	txn.Type = domain.TransactionTypeLoanPaid
	txn.BalanceAfter = balanceAfter
	s.txns[transactionID] = txn
	return nil
}

// listByAccountLocked walks the append order backwards so the result is
// most-recent-first.
func (s *Store) listByAccountLocked(accountID string, dateRange *domain.DateRange, loansOnly bool) []domain.Transaction {
	out := make([]domain.Transaction, 0)
	for i := len(s.order) - 1; i >= 0; i-- {
		txn := s.txns[s.order[i]]
		if txn.AccountID != accountID {
			continue
		}
		if loansOnly && txn.Type != domain.TransactionTypeLoan {
			continue
		}
		if dateRange != nil && !dateRange.Contains(txn.Timestamp) {
			continue
		}
		out = append(out, txn)
	}
	return out
}

func (s *Store) sumAmountLocked(dateRange domain.DateRange) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range s.txns {
		if dateRange.Contains(txn.Timestamp) {
			total = total.Add(txn.Amount)
		}
	}
	return total
}
