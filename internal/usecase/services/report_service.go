package services

import (
	"context"
	"errors"
	"strings"

	"github.com/api-sage/core-banking-service/internal/adapter/http/models"
	"github.com/api-sage/core-banking-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking-service/internal/commons"
	"github.com/api-sage/core-banking-service/internal/domain"
	"github.com/api-sage/core-banking-service/internal/logger"
	"github.com/api-sage/core-banking-service/internal/usecase/service_interfaces"
)

// Verify that ReportService implements the service_interfaces.ReportService interface
var _ service_interfaces.ReportService = (*ReportService)(nil)

type ReportService struct {
	accountRepo repo_interfaces.AccountRepository
	ledgerRepo  repo_interfaces.TransactionRepository
}

func NewReportService(
	accountRepo repo_interfaces.AccountRepository,
	ledgerRepo repo_interfaces.TransactionRepository,
) *ReportService {
	return &ReportService{accountRepo: accountRepo, ledgerRepo: ledgerRepo}
}

func (s *ReportService) GetReport(ctx context.Context, req models.ReportRequest) (commons.Response[models.ReportResponse], error) {
	logger.Info("report service get report", logger.Fields{
		"accountId": req.AccountID,
		"hasRange":  req.DateRange != nil,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.ReportResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.GetByID(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return commons.ErrorResponse[models.ReportResponse]("Account not found", err.Error()), err
		}
		return commons.ErrorResponse[models.ReportResponse]("failed to build report", "Unable to build report right now"), err
	}

	transactions, err := s.ledgerRepo.ListByAccount(ctx, req.AccountID, req.DateRange)
	if err != nil {
		logger.Error("report service list transactions failed", err, logger.Fields{
			"accountId": req.AccountID,
		})
		return commons.ErrorResponse[models.ReportResponse]("failed to build report", "Unable to build report right now"), err
	}

	response := models.ReportResponse{
		AccountID:    account.ID,
		Transactions: mapTransactions(transactions),
	}

	// Mirrors the report view's balance figure: with a date range the number
	// is the transacted total across all accounts in that range, otherwise
	// the account's current balance.
	if req.DateRange != nil {
		total, err := s.ledgerRepo.SumAmount(ctx, *req.DateRange)
		if err != nil {
			logger.Error("report service sum amount failed", err, nil)
			return commons.ErrorResponse[models.ReportResponse]("failed to build report", "Unable to build report right now"), err
		}
		response.Balance = total.StringFixed(2)
		response.BalanceIsTotal = true
	} else {
		response.Balance = account.Balance.StringFixed(2)
	}

	logger.Info("report service get report success", logger.Fields{
		"accountId":        req.AccountID,
		"transactionCount": len(response.Transactions),
	})
	return commons.SuccessResponse("Report generated", response), nil
}

func (s *ReportService) ListLoans(ctx context.Context, accountID string) (commons.Response[[]models.TransactionResponse], error) {
	logger.Info("report service list loans", logger.Fields{
		"accountId": accountID,
	})

	if strings.TrimSpace(accountID) == "" {
		err := errors.New("accountId is required")
		return commons.ErrorResponse[[]models.TransactionResponse]("validation failed", err.Error()), err
	}

	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return commons.ErrorResponse[[]models.TransactionResponse]("Account not found", err.Error()), err
		}
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to list loans", "Unable to list loans right now"), err
	}

	loans, err := s.ledgerRepo.ListLoans(ctx, accountID)
	if err != nil {
		logger.Error("report service list loans failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to list loans", "Unable to list loans right now"), err
	}

	return commons.SuccessResponse("Loans listed", mapTransactions(loans)), nil
}

func mapTransactions(transactions []domain.Transaction) []models.TransactionResponse {
	out := make([]models.TransactionResponse, 0, len(transactions))
	for _, txn := range transactions {
		out = append(out, models.MapTransaction(txn))
	}
	return out
}
