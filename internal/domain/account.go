package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is owned by account provisioning; the engine only mutates Balance
// through the store's atomic adjustment.
type Account struct {
	ID        string
	UserID    string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
