package models_test

import (
	"testing"

	"github.com/api-sage/core-banking-service/internal/adapter/http/models"
	"github.com/api-sage/core-banking-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepositRequestValidate(t *testing.T) {
	assert.Error(t, models.DepositRequest{}.Validate())
	assert.Error(t, models.DepositRequest{AccountID: "abc", Amount: decimal.Zero}.Validate())
	assert.Error(t, models.DepositRequest{AccountID: "abc", Amount: decimal.NewFromInt(-1)}.Validate())
	assert.Error(t, models.DepositRequest{AccountID: "  ", Amount: decimal.NewFromInt(5)}.Validate())
	assert.NoError(t, models.DepositRequest{AccountID: "abc", Amount: decimal.NewFromInt(5)}.Validate())
}

func TestPayLoanRequestValidate(t *testing.T) {
	assert.Error(t, models.PayLoanRequest{}.Validate())
	assert.Error(t, models.PayLoanRequest{LoanID: "   "}.Validate())
	assert.NoError(t, models.PayLoanRequest{LoanID: "loan-1"}.Validate())
}

func TestTransferRequestValidate(t *testing.T) {
	valid := models.TransferRequest{
		SenderAccountID:    "a",
		RecipientAccountID: "b",
		Amount:             decimal.NewFromInt(10),
	}
	assert.NoError(t, valid.Validate())

	sameAccount := valid
	sameAccount.RecipientAccountID = "a"
	assert.Error(t, sameAccount.Validate())

	missingRecipient := valid
	missingRecipient.RecipientAccountID = ""
	assert.Error(t, missingRecipient.Validate())

	zeroAmount := valid
	zeroAmount.Amount = decimal.Zero
	assert.Error(t, zeroAmount.Validate())
}

func TestMapTransaction(t *testing.T) {
	recipient := "acct-2"
	resp := models.MapTransaction(domain.Transaction{
		ID:                 "txn-1",
		AccountID:          "acct-1",
		RecipientAccountID: &recipient,
		Type:               domain.TransactionTypeTransfer,
		Amount:             decimal.RequireFromString("12.5"),
		BalanceAfter:       decimal.RequireFromString("87.5"),
	})

	require.Equal(t, "txn-1", resp.TransactionID)
	require.Equal(t, "acct-2", resp.RecipientAccountID)
	require.Equal(t, "TRANSFER", resp.Type)
	require.Equal(t, "12.50", resp.Amount)
	require.Equal(t, "87.50", resp.BalanceAfter)
}

func TestMapTransactionNoRecipient(t *testing.T) {
	resp := models.MapTransaction(domain.Transaction{
		ID:        "txn-1",
		AccountID: "acct-1",
		Type:      domain.TransactionTypeDeposit,
		Amount:    decimal.NewFromInt(5),
	})
	require.Empty(t, resp.RecipientAccountID)
}
