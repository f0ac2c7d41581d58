package controller

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/api-sage/core-banking-service/internal/adapter/http/models"
	"github.com/api-sage/core-banking-service/internal/commons"
	"github.com/api-sage/core-banking-service/internal/domain"
)

var errInvalidDateRange = errors.New("startDate and endDate must both be provided as YYYY-MM-DD")

type ReportService interface {
	GetReport(ctx context.Context, req models.ReportRequest) (commons.Response[models.ReportResponse], error)
	ListLoans(ctx context.Context, accountID string) (commons.Response[[]models.TransactionResponse], error)
}

type ReportController struct {
	service ReportService
}

func NewReportController(service ReportService) *ReportController {
	return &ReportController{service: service}
}

func (c *ReportController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	register := func(pattern string, handler http.HandlerFunc) {
		if authMiddleware != nil {
			mux.Handle(pattern, authMiddleware(handler))
			return
		}
		mux.Handle(pattern, handler)
	}

	register("GET /transactions/report", c.report)
	register("GET /transactions/loans", c.loans)
}

func (c *ReportController) report(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	req := models.ReportRequest{
		AccountID: strings.TrimSpace(r.URL.Query().Get("accountId")),
	}

	dateRange, err := parseDateRange(r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.ReportResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	req.DateRange = dateRange

	response, err := c.service.GetReport(r.Context(), req)
	if err != nil {
		logError(r, err, nil)
		status := statusForResponse(response, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *ReportController) loans(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	accountID := strings.TrimSpace(r.URL.Query().Get("accountId"))

	response, err := c.service.ListLoans(r.Context(), accountID)
	if err != nil {
		logError(r, err, nil)
		status := statusForResponse(response, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

// parseDateRange requires both bounds or neither, ISO calendar dates.
func parseDateRange(startRaw, endRaw string) (*domain.DateRange, error) {
	startRaw = strings.TrimSpace(startRaw)
	endRaw = strings.TrimSpace(endRaw)

	if startRaw == "" && endRaw == "" {
		return nil, nil
	}
	if startRaw == "" || endRaw == "" {
		return nil, errInvalidDateRange
	}

	start, err := time.Parse("2006-01-02", startRaw)
	if err != nil {
		return nil, errInvalidDateRange
	}
	end, err := time.Parse("2006-01-02", endRaw)
	if err != nil {
		return nil, errInvalidDateRange
	}

	return &domain.DateRange{Start: start, End: end}, nil
}
