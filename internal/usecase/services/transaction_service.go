package services

import (
	"context"
	"errors"

	"github.com/api-sage/core-banking-service/internal/adapter/http/models"
	"github.com/api-sage/core-banking-service/internal/adapter/notifier"
	"github.com/api-sage/core-banking-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking-service/internal/commons"
	"github.com/api-sage/core-banking-service/internal/domain"
	"github.com/api-sage/core-banking-service/internal/featuregate"
	"github.com/api-sage/core-banking-service/internal/logger"
	"github.com/api-sage/core-banking-service/internal/metrics"
	"github.com/api-sage/core-banking-service/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Verify that TransactionService implements the service_interfaces.TransactionService interface
var _ service_interfaces.TransactionService = (*TransactionService)(nil)

type TransactionService struct {
	accountRepo repo_interfaces.AccountRepository
	ledgerRepo  repo_interfaces.TransactionRepository
	runner      repo_interfaces.AtomicRunner
	gate        *featuregate.Gate
	sink        notifier.Notifier
	metrics     *metrics.Metrics
}

func NewTransactionService(
	accountRepo repo_interfaces.AccountRepository,
	ledgerRepo repo_interfaces.TransactionRepository,
	runner repo_interfaces.AtomicRunner,
	gate *featuregate.Gate,
	sink notifier.Notifier,
	m *metrics.Metrics,
) *TransactionService {
	return &TransactionService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		runner:      runner,
		gate:        gate,
		sink:        sink,
		metrics:     m,
	}
}

func (s *TransactionService) Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.TransactionResponse], error) {
	resp, err := s.deposit(ctx, req)
	s.metrics.ObserveOperation("deposit", err)
	return resp, err
}

func (s *TransactionService) deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("transaction service deposit", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := s.ensureEnabled(); err != nil {
		return failure(err), err
	}
	if err := validateAmount(req.Amount); err != nil {
		return failure(err), err
	}
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.GetByID(ctx, req.AccountID)
	if err != nil {
		return failure(err), err
	}

	var created domain.Transaction
	err = s.runner.RunAtomic(ctx, func(ops repo_interfaces.AtomicOps) error {
		newBalance, err := ops.AdjustBalance(ctx, req.AccountID, req.Amount)
		if err != nil {
			return err
		}

		created, err = ops.AppendTransaction(ctx, domain.Transaction{
			AccountID:    req.AccountID,
			Type:         domain.TransactionTypeDeposit,
			Amount:       req.Amount,
			BalanceAfter: newBalance,
		})
		return err
	})
	if err != nil {
		logger.Error("transaction service deposit failed", err, logger.Fields{
			"accountId": req.AccountID,
		})
		return failure(err), err
	}

	s.notify(ctx, account.UserID, notifier.KindDeposit, req.Amount)

	logger.Info("transaction service deposit success", logger.Fields{
		"accountId":     req.AccountID,
		"transactionId": created.ID,
	})
	return commons.SuccessResponse("Deposit successful", models.MapTransaction(created)), nil
}

func (s *TransactionService) Withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.TransactionResponse], error) {
	resp, err := s.withdraw(ctx, req)
	s.metrics.ObserveOperation("withdraw", err)
	return resp, err
}

func (s *TransactionService) withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("transaction service withdraw", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := s.ensureEnabled(); err != nil {
		return failure(err), err
	}
	if err := validateAmount(req.Amount); err != nil {
		return failure(err), err
	}
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.GetByID(ctx, req.AccountID)
	if err != nil {
		return failure(err), err
	}

	var created domain.Transaction
	err = s.runner.RunAtomic(ctx, func(ops repo_interfaces.AtomicOps) error {
		// Overdrafts are rejected: the adjustment fails rather than leaving
		// the balance negative.
		newBalance, err := ops.AdjustBalance(ctx, req.AccountID, req.Amount.Neg())
		if err != nil {
			return err
		}

		created, err = ops.AppendTransaction(ctx, domain.Transaction{
			AccountID:    req.AccountID,
			Type:         domain.TransactionTypeWithdrawal,
			Amount:       req.Amount,
			BalanceAfter: newBalance,
		})
		return err
	})
	if err != nil {
		logger.Error("transaction service withdraw failed", err, logger.Fields{
			"accountId": req.AccountID,
		})
		return failure(err), err
	}

	s.notify(ctx, account.UserID, notifier.KindWithdrawal, req.Amount)

	logger.Info("transaction service withdraw success", logger.Fields{
		"accountId":     req.AccountID,
		"transactionId": created.ID,
	})
	return commons.SuccessResponse("Withdrawal successful", models.MapTransaction(created)), nil
}

func (s *TransactionService) RequestLoan(ctx context.Context, req models.LoanRequest) (commons.Response[models.TransactionResponse], error) {
	resp, err := s.requestLoan(ctx, req)
	s.metrics.ObserveOperation("request_loan", err)
	return resp, err
}

func (s *TransactionService) requestLoan(ctx context.Context, req models.LoanRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("transaction service request loan", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := s.ensureEnabled(); err != nil {
		return failure(err), err
	}
	if err := validateAmount(req.Amount); err != nil {
		return failure(err), err
	}
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.GetByID(ctx, req.AccountID)
	if err != nil {
		return failure(err), err
	}

	var created domain.Transaction
	err = s.runner.RunAtomic(ctx, func(ops repo_interfaces.AtomicOps) error {
		current, err := ops.GetAccountForUpdate(ctx, req.AccountID)
		if err != nil {
			return err
		}

		count, err := ops.CountApprovedLoans(ctx, req.AccountID)
		if err != nil {
			return err
		}
		if count >= domain.MaxApprovedLoans {
			return domain.ErrLoanLimitExceeded
		}

		// A loan request moves no money until approved and paid off; the
		// snapshot records the balance as it stands.
		created, err = ops.AppendTransaction(ctx, domain.Transaction{
			AccountID:    req.AccountID,
			Type:         domain.TransactionTypeLoan,
			Amount:       req.Amount,
			BalanceAfter: current.Balance,
		})
		return err
	})
	if err != nil {
		logger.Error("transaction service request loan failed", err, logger.Fields{
			"accountId": req.AccountID,
		})
		return failure(err), err
	}

	s.notify(ctx, account.UserID, notifier.KindLoanRequest, req.Amount)

	logger.Info("transaction service request loan success", logger.Fields{
		"accountId":     req.AccountID,
		"transactionId": created.ID,
	})
	return commons.SuccessResponse("Loan request submitted", models.MapTransaction(created)), nil
}

func (s *TransactionService) PayLoan(ctx context.Context, req models.PayLoanRequest) (commons.Response[models.TransactionResponse], error) {
	resp, err := s.payLoan(ctx, req)
	s.metrics.ObserveOperation("pay_loan", err)
	return resp, err
}

func (s *TransactionService) payLoan(ctx context.Context, req models.PayLoanRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("transaction service pay loan", logger.Fields{
		"loanId": req.LoanID,
	})

	if err := s.ensureEnabled(); err != nil {
		return failure(err), err
	}
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	var (
		loan             domain.Transaction
		awaitingApproval bool
	)
	err := s.runner.RunAtomic(ctx, func(ops repo_interfaces.AtomicOps) error {
		var err error
		loan, err = ops.GetTransactionForUpdate(ctx, req.LoanID)
		if err != nil {
			return err
		}
		if loan.Type != domain.TransactionTypeLoan {
			return domain.ErrInvalidLoanState
		}
		if !loan.LoanApproved {
			awaitingApproval = true
			return nil
		}

		account, err := ops.GetAccountForUpdate(ctx, loan.AccountID)
		if err != nil {
			return err
		}
		// Payoff requires the loan amount to be strictly less than the
		// balance; a loan exactly equal to the balance is rejected.
		if loan.Amount.GreaterThanOrEqual(account.Balance) {
			return domain.ErrInsufficientFunds
		}

		newBalance, err := ops.AdjustBalance(ctx, loan.AccountID, loan.Amount.Neg())
		if err != nil {
			return err
		}
		if err := ops.MarkLoanPaid(ctx, loan.ID, newBalance); err != nil {
			return err
		}

		loan.Type = domain.TransactionTypeLoanPaid
		loan.BalanceAfter = newBalance
		return nil
	})
	if err != nil {
		logger.Error("transaction service pay loan failed", err, logger.Fields{
			"loanId": req.LoanID,
		})
		return failure(err), err
	}

	if awaitingApproval {
		logger.Info("transaction service pay loan skipped, awaiting approval", logger.Fields{
			"loanId": req.LoanID,
		})
		return commons.SuccessResponse("Loan is awaiting approval", models.MapTransaction(loan)), nil
	}

	logger.Info("transaction service pay loan success", logger.Fields{
		"loanId":    req.LoanID,
		"accountId": loan.AccountID,
	})
	return commons.SuccessResponse("Loan paid successfully", models.MapTransaction(loan)), nil
}

func (s *TransactionService) Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransactionResponse], error) {
	resp, err := s.transfer(ctx, req)
	s.metrics.ObserveOperation("transfer", err)
	return resp, err
}

func (s *TransactionService) transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("transaction service transfer", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := s.ensureEnabled(); err != nil {
		return failure(err), err
	}
	if err := validateAmount(req.Amount); err != nil {
		return failure(err), err
	}
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	sender, err := s.accountRepo.GetByID(ctx, req.SenderAccountID)
	if err != nil {
		return failure(err), err
	}

	recipient, err := s.accountRepo.GetByID(ctx, req.RecipientAccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			err = domain.ErrInvalidRecipient
		}
		return failure(err), err
	}

	var senderRow domain.Transaction
	err = s.runner.RunAtomic(ctx, func(ops repo_interfaces.AtomicOps) error {
		// Lock both account rows in ascending ID order so concurrent
		// opposing transfers cannot deadlock.
		for _, id := range orderedPair(sender.ID, recipient.ID) {
			if _, err := ops.GetAccountForUpdate(ctx, id); err != nil {
				return err
			}
		}

		senderBalance, err := ops.AdjustBalance(ctx, sender.ID, req.Amount.Neg())
		if err != nil {
			return err
		}
		recipientBalance, err := ops.AdjustBalance(ctx, recipient.ID, req.Amount)
		if err != nil {
			return err
		}

		senderRow, err = ops.AppendTransaction(ctx, domain.Transaction{
			AccountID:          sender.ID,
			RecipientAccountID: &recipient.ID,
			Type:               domain.TransactionTypeTransfer,
			Amount:             req.Amount,
			BalanceAfter:       senderBalance,
		})
		if err != nil {
			return err
		}

		// The recipient gets a symmetric row for their own report view,
		// naming the sender as the counterparty.
		_, err = ops.AppendTransaction(ctx, domain.Transaction{
			AccountID:          recipient.ID,
			RecipientAccountID: &sender.ID,
			Type:               domain.TransactionTypeTransfer,
			Amount:             req.Amount,
			BalanceAfter:       recipientBalance,
		})
		return err
	})
	if err != nil {
		logger.Error("transaction service transfer failed", err, logger.Fields{
			"senderAccountId":    req.SenderAccountID,
			"recipientAccountId": req.RecipientAccountID,
		})
		return failure(err), err
	}

	if s.sink != nil {
		var g errgroup.Group
		g.Go(func() error {
			return s.sink.Notify(ctx, sender.UserID, notifier.KindTransferSent, req.Amount)
		})
		g.Go(func() error {
			return s.sink.Notify(ctx, recipient.UserID, notifier.KindTransferReceived, req.Amount)
		})
		if err := g.Wait(); err != nil {
			logger.Error("transaction service transfer notification failed", err, logger.Fields{
				"senderAccountId": req.SenderAccountID,
			})
		}
	}

	logger.Info("transaction service transfer success", logger.Fields{
		"senderAccountId":    sender.ID,
		"recipientAccountId": recipient.ID,
		"transactionId":      senderRow.ID,
	})
	return commons.SuccessResponse("Transfer successful", models.MapTransaction(senderRow)), nil
}

func (s *TransactionService) ApproveLoan(ctx context.Context, loanID string) (commons.Response[models.TransactionResponse], error) {
	resp, err := s.approveLoan(ctx, loanID)
	s.metrics.ObserveOperation("approve_loan", err)
	return resp, err
}

func (s *TransactionService) approveLoan(ctx context.Context, loanID string) (commons.Response[models.TransactionResponse], error) {
	logger.Info("transaction service approve loan", logger.Fields{
		"loanId": loanID,
	})

	if err := s.ledgerRepo.ApproveLoan(ctx, loanID); err != nil {
		logger.Error("transaction service approve loan failed", err, logger.Fields{
			"loanId": loanID,
		})
		return failure(err), err
	}

	loan, err := s.ledgerRepo.GetByID(ctx, loanID)
	if err != nil {
		return failure(err), err
	}

	return commons.SuccessResponse("Loan approved", models.MapTransaction(loan)), nil
}

func (s *TransactionService) ensureEnabled() error {
	if s.gate != nil && !s.gate.IsEnabled() {
		return domain.ErrTransactionsDisabled
	}
	return nil
}

func (s *TransactionService) notify(ctx context.Context, userRef string, kind notifier.Kind, amount decimal.Decimal) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Notify(ctx, userRef, kind, amount); err != nil {
		logger.Error("transaction service notification failed", err, logger.Fields{
			"userRef": userRef,
			"kind":    kind,
		})
	}
}

func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	return nil
}

func orderedPair(a, b string) []string {
	if a < b {
		return []string{a, b}
	}
	return []string{b, a}
}

func failure(err error) commons.Response[models.TransactionResponse] {
	return commons.ErrorResponse[models.TransactionResponse](failureMessage(err), err.Error())
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrTransactionsDisabled):
		return "Transactions are temporarily disabled"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "validation failed"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "Account not found"
	case errors.Is(err, domain.ErrRecordNotFound):
		return "Transaction not found"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "Insufficient funds"
	case errors.Is(err, domain.ErrLoanLimitExceeded):
		return "Loan limit exceeded"
	case errors.Is(err, domain.ErrInvalidRecipient):
		return "Recipient account is invalid"
	case errors.Is(err, domain.ErrInvalidLoanState):
		return "Loan is not in a payable state"
	default:
		return "Unable to process transaction right now"
	}
}
