package notifier

import (
	"context"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindDeposit          Kind = "DEPOSIT"
	KindWithdrawal       Kind = "WITHDRAWAL"
	KindLoanRequest      Kind = "LOAN_REQUEST"
	KindTransferSent     Kind = "TRANSFER_SENT"
	KindTransferReceived Kind = "TRANSFER_RECEIVED"
)

// Notifier is the fire-and-forget notification sink. Callers log failures and
// never let them fail a committed financial operation.
type Notifier interface {
	Notify(ctx context.Context, userRef string, kind Kind, amount decimal.Decimal) error
}
