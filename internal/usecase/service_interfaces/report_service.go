package service_interfaces

import (
	"context"

	"github.com/api-sage/core-banking-service/internal/adapter/http/models"
	"github.com/api-sage/core-banking-service/internal/commons"
)

type ReportService interface {
	GetReport(ctx context.Context, req models.ReportRequest) (commons.Response[models.ReportResponse], error)
	ListLoans(ctx context.Context, accountID string) (commons.Response[[]models.TransactionResponse], error)
}
