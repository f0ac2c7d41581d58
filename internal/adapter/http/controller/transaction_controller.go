package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/core-banking-service/internal/adapter/http/models"
	"github.com/api-sage/core-banking-service/internal/commons"
	"github.com/api-sage/core-banking-service/internal/logger"
)

type TransactionService interface {
	Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.TransactionResponse], error)
	Withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.TransactionResponse], error)
	RequestLoan(ctx context.Context, req models.LoanRequest) (commons.Response[models.TransactionResponse], error)
	PayLoan(ctx context.Context, req models.PayLoanRequest) (commons.Response[models.TransactionResponse], error)
	Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransactionResponse], error)
}

type TransactionController struct {
	service TransactionService
}

func NewTransactionController(service TransactionService) *TransactionController {
	return &TransactionController{service: service}
}

func (c *TransactionController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	register := func(pattern string, handler http.HandlerFunc) {
		if authMiddleware != nil {
			mux.Handle(pattern, authMiddleware(handler))
			return
		}
		mux.Handle(pattern, handler)
	}

	register("POST /transactions/deposit", c.deposit)
	register("POST /transactions/withdraw", c.withdraw)
	register("POST /transactions/loan-request", c.requestLoan)
	register("POST /transactions/loans/{id}/pay", c.payLoan)
	register("POST /transactions/transfer", c.transfer)
}

func (c *TransactionController) deposit(w http.ResponseWriter, r *http.Request) {
	var req models.DepositRequest
	handleTransaction(w, r, &req, func(ctx context.Context) (commons.Response[models.TransactionResponse], error) {
		return c.service.Deposit(ctx, req)
	})
}

func (c *TransactionController) withdraw(w http.ResponseWriter, r *http.Request) {
	var req models.WithdrawRequest
	handleTransaction(w, r, &req, func(ctx context.Context) (commons.Response[models.TransactionResponse], error) {
		return c.service.Withdraw(ctx, req)
	})
}

func (c *TransactionController) requestLoan(w http.ResponseWriter, r *http.Request) {
	var req models.LoanRequest
	handleTransaction(w, r, &req, func(ctx context.Context) (commons.Response[models.TransactionResponse], error) {
		return c.service.RequestLoan(ctx, req)
	})
}

func (c *TransactionController) payLoan(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := models.PayLoanRequest{LoanID: r.PathValue("id")}
	logRequest(r, req)

	response, err := c.service.PayLoan(r.Context(), req)
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

func (c *TransactionController) transfer(w http.ResponseWriter, r *http.Request) {
	var req models.TransferRequest
	handleTransaction(w, r, &req, func(ctx context.Context) (commons.Response[models.TransactionResponse], error) {
		return c.service.Transfer(ctx, req)
	})
}

func handleTransaction(
	w http.ResponseWriter,
	r *http.Request,
	req any,
	invoke func(ctx context.Context) (commons.Response[models.TransactionResponse], error),
) {
	start := time.Now()

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := invoke(r.Context())
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusForResponse(response, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func statusForResponse[T any](response commons.Response[T], err error) int {
	if response.Message == "validation failed" || response.Message == "invalid request body" {
		return http.StatusBadRequest
	}
	return statusForError(err)
}
