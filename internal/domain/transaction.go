package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTypeLoan       TransactionType = "LOAN"
	TransactionTypeLoanPaid   TransactionType = "LOAN_PAID"
	TransactionTypeTransfer   TransactionType = "TRANSFER"
)

// MaxApprovedLoans caps rows with type LOAN and loan_approved = TRUE per account.
const MaxApprovedLoans = 3

type Transaction struct {
	ID                 string
	AccountID          string
	RecipientAccountID *string
	Type               TransactionType
	Amount             decimal.Decimal
	BalanceAfter       decimal.Decimal
	LoanApproved       bool
	Timestamp          time.Time
}

// DateRange filters by the timestamp's calendar date, inclusive on both ends.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains compares date components only; the time of day is ignored.
func (r DateRange) Contains(ts time.Time) bool {
	day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	start := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(r.End.Year(), r.End.Month(), r.End.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(start) && !day.After(end)
}
