package service_interfaces

import (
	"context"

	"github.com/api-sage/core-banking-service/internal/adapter/http/models"
	"github.com/api-sage/core-banking-service/internal/commons"
)

type TransactionService interface {
	Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.TransactionResponse], error)
	Withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.TransactionResponse], error)
	RequestLoan(ctx context.Context, req models.LoanRequest) (commons.Response[models.TransactionResponse], error)
	PayLoan(ctx context.Context, req models.PayLoanRequest) (commons.Response[models.TransactionResponse], error)
	Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransactionResponse], error)
	ApproveLoan(ctx context.Context, loanID string) (commons.Response[models.TransactionResponse], error)
}
