package controller_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/api-sage/core-banking-service/internal/adapter/http/controller"
	"github.com/api-sage/core-banking-service/internal/adapter/http/models"
	"github.com/api-sage/core-banking-service/internal/commons"
	"github.com/api-sage/core-banking-service/internal/domain"
	"github.com/api-sage/core-banking-service/internal/featuregate"
	"github.com/stretchr/testify/require"
)

type stubTransactionService struct {
	response commons.Response[models.TransactionResponse]
	err      error
	lastPay  models.PayLoanRequest
}

func (s *stubTransactionService) Deposit(_ context.Context, _ models.DepositRequest) (commons.Response[models.TransactionResponse], error) {
	return s.response, s.err
}

func (s *stubTransactionService) Withdraw(_ context.Context, _ models.WithdrawRequest) (commons.Response[models.TransactionResponse], error) {
	return s.response, s.err
}

func (s *stubTransactionService) RequestLoan(_ context.Context, _ models.LoanRequest) (commons.Response[models.TransactionResponse], error) {
	return s.response, s.err
}

func (s *stubTransactionService) PayLoan(_ context.Context, req models.PayLoanRequest) (commons.Response[models.TransactionResponse], error) {
	s.lastPay = req
	return s.response, s.err
}

func (s *stubTransactionService) Transfer(_ context.Context, _ models.TransferRequest) (commons.Response[models.TransactionResponse], error) {
	return s.response, s.err
}

func newTransactionMux(svc *stubTransactionService) *http.ServeMux {
	mux := http.NewServeMux()
	controller.NewTransactionController(svc).RegisterRoutes(mux, nil)
	return mux
}

func TestTransactionControllerDepositSuccess(t *testing.T) {
	svc := &stubTransactionService{
		response: commons.SuccessResponse("Deposit successful", models.TransactionResponse{TransactionID: "txn-1"}),
	}
	mux := newTransactionMux(svc)

	req := httptest.NewRequest(http.MethodPost, "/transactions/deposit",
		strings.NewReader(`{"accountId":"acct-1","amount":"25.00"}`))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body commons.Response[models.TransactionResponse]
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.True(t, body.Success)
	require.Equal(t, "txn-1", body.Data.TransactionID)
}

func TestTransactionControllerRejectsMalformedBody(t *testing.T) {
	mux := newTransactionMux(&stubTransactionService{})

	req := httptest.NewRequest(http.MethodPost, "/transactions/deposit", strings.NewReader(`{not-json`))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTransactionControllerStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		message    string
		wantStatus int
	}{
		{"gate disabled", domain.ErrTransactionsDisabled, "Transactions are temporarily disabled", http.StatusForbidden},
		{"unknown account", domain.ErrAccountNotFound, "Account not found", http.StatusNotFound},
		{"insufficient funds", domain.ErrInsufficientFunds, "Insufficient funds", http.StatusUnprocessableEntity},
		{"loan limit", domain.ErrLoanLimitExceeded, "Loan limit exceeded", http.StatusConflict},
		{"invalid amount", domain.ErrInvalidAmount, "validation failed", http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubTransactionService{
				response: commons.ErrorResponse[models.TransactionResponse](tc.message, tc.err.Error()),
				err:      tc.err,
			}
			mux := newTransactionMux(svc)

			req := httptest.NewRequest(http.MethodPost, "/transactions/withdraw",
				strings.NewReader(`{"accountId":"acct-1","amount":"25.00"}`))
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			require.Equal(t, tc.wantStatus, rr.Code)
		})
	}
}

func TestTransactionControllerPayLoanUsesPathValue(t *testing.T) {
	svc := &stubTransactionService{
		response: commons.SuccessResponse("Loan paid successfully", models.TransactionResponse{}),
	}
	mux := newTransactionMux(svc)

	req := httptest.NewRequest(http.MethodPost, "/transactions/loans/loan-42/pay", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "loan-42", svc.lastPay.LoanID)
}

type stubApprover struct {
	lastID string
}

func (s *stubApprover) ApproveLoan(_ context.Context, loanID string) (commons.Response[models.TransactionResponse], error) {
	s.lastID = loanID
	return commons.SuccessResponse("Loan approved", models.TransactionResponse{TransactionID: loanID, LoanApproved: true}), nil
}

func TestAdminControllerGateRoundTrip(t *testing.T) {
	gate := featuregate.New(true)
	mux := http.NewServeMux()
	controller.NewAdminController(gate, &stubApprover{}).RegisterRoutes(mux, nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/transactions-gate", strings.NewReader(`{"enabled":false}`))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.False(t, gate.IsEnabled())

	req = httptest.NewRequest(http.MethodGet, "/admin/transactions-gate", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	var body commons.Response[models.GateStatusResponse]
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.False(t, body.Data.Enabled)
}

func TestAdminControllerApproveLoan(t *testing.T) {
	approver := &stubApprover{}
	mux := http.NewServeMux()
	controller.NewAdminController(featuregate.New(true), approver).RegisterRoutes(mux, nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/loans/loan-7/approve", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "loan-7", approver.lastID)
}
