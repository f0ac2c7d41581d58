package memory

import (
	"context"

	"github.com/api-sage/core-banking-service/internal/domain"
)

type AccountRepository struct {
	store *Store
}

func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

func (r *AccountRepository) GetByID(_ context.Context, accountID string) (domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.getAccountLocked(accountID)
}
