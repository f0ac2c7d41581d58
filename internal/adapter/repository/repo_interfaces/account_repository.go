package repo_interfaces

import (
	"context"

	"github.com/api-sage/core-banking-service/internal/domain"
)

type AccountRepository interface {
	GetByID(ctx context.Context, accountID string) (domain.Account, error)
}
