package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/core-banking-service/internal/adapter/http/models"
	"github.com/api-sage/core-banking-service/internal/commons"
	"github.com/api-sage/core-banking-service/internal/featuregate"
	"github.com/api-sage/core-banking-service/internal/logger"
)

type LoanApprover interface {
	ApproveLoan(ctx context.Context, loanID string) (commons.Response[models.TransactionResponse], error)
}

// AdminController owns the operational surface: the transactions feature gate
// and the external loan-approval step.
type AdminController struct {
	gate     *featuregate.Gate
	approver LoanApprover
}

func NewAdminController(gate *featuregate.Gate, approver LoanApprover) *AdminController {
	return &AdminController{gate: gate, approver: approver}
}

func (c *AdminController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	register := func(pattern string, handler http.HandlerFunc) {
		if authMiddleware != nil {
			mux.Handle(pattern, authMiddleware(handler))
			return
		}
		mux.Handle(pattern, handler)
	}

	register("GET /admin/transactions-gate", c.gateStatus)
	register("POST /admin/transactions-gate", c.updateGate)
	register("POST /admin/loans/{id}/approve", c.approveLoan)
}

func (c *AdminController) gateStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response := commons.SuccessResponse("Gate status", models.GateStatusResponse{
		Enabled: c.gate.IsEnabled(),
	})
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AdminController) updateGate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.GateUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.GateStatusResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	c.gate.SetEnabled(req.Enabled)
	logger.Info("admin controller gate updated", logger.Fields{
		"enabled": req.Enabled,
	})

	response := commons.SuccessResponse("Gate updated", models.GateStatusResponse{
		Enabled: c.gate.IsEnabled(),
	})
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AdminController) approveLoan(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.approver.ApproveLoan(r.Context(), r.PathValue("id"))
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
