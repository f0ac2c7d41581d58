package models

import (
	"errors"
	"strings"
	"time"

	"github.com/api-sage/core-banking-service/internal/domain"
	"github.com/shopspring/decimal"
)

type DepositRequest struct {
	AccountID string          `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
}

func (r DepositRequest) Validate() error {
	return validateAccountAndAmount(r.AccountID, r.Amount)
}

type WithdrawRequest struct {
	AccountID string          `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
}

func (r WithdrawRequest) Validate() error {
	return validateAccountAndAmount(r.AccountID, r.Amount)
}

type LoanRequest struct {
	AccountID string          `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
}

func (r LoanRequest) Validate() error {
	return validateAccountAndAmount(r.AccountID, r.Amount)
}

type PayLoanRequest struct {
	LoanID string `json:"loanId"`
}

func (r PayLoanRequest) Validate() error {
	if strings.TrimSpace(r.LoanID) == "" {
		return errors.New("loanId is required")
	}
	return nil
}

type TransferRequest struct {
	SenderAccountID    string          `json:"senderAccountId"`
	RecipientAccountID string          `json:"recipientAccountId"`
	Amount             decimal.Decimal `json:"amount"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.SenderAccountID) == "" {
		errs = append(errs, "senderAccountId is required")
	}
	if strings.TrimSpace(r.RecipientAccountID) == "" {
		errs = append(errs, "recipientAccountId is required")
	}
	if strings.TrimSpace(r.SenderAccountID) != "" &&
		strings.TrimSpace(r.SenderAccountID) == strings.TrimSpace(r.RecipientAccountID) {
		errs = append(errs, "senderAccountId and recipientAccountId cannot be the same")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransactionResponse struct {
	TransactionID      string    `json:"transactionId"`
	AccountID          string    `json:"accountId"`
	RecipientAccountID string    `json:"recipientAccountId,omitempty"`
	Type               string    `json:"type"`
	Amount             string    `json:"amount"`
	BalanceAfter       string    `json:"balanceAfter"`
	LoanApproved       bool      `json:"loanApproved"`
	Timestamp          time.Time `json:"timestamp"`
}

func MapTransaction(txn domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: txn.ID,
		AccountID:     txn.AccountID,
		Type:          string(txn.Type),
		Amount:        txn.Amount.StringFixed(2),
		BalanceAfter:  txn.BalanceAfter.StringFixed(2),
		LoanApproved:  txn.LoanApproved,
		Timestamp:     txn.Timestamp,
	}
	if txn.RecipientAccountID != nil {
		resp.RecipientAccountID = *txn.RecipientAccountID
	}
	return resp
}

func validateAccountAndAmount(accountID string, amount decimal.Decimal) error {
	var errs []string

	if strings.TrimSpace(accountID) == "" {
		errs = append(errs, "accountId is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
