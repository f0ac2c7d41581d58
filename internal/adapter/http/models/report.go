package models

import (
	"errors"
	"strings"

	"github.com/api-sage/core-banking-service/internal/domain"
)

type ReportRequest struct {
	AccountID string
	DateRange *domain.DateRange
}

func (r ReportRequest) Validate() error {
	if strings.TrimSpace(r.AccountID) == "" {
		return errors.New("accountId is required")
	}
	if r.DateRange != nil && r.DateRange.End.Before(r.DateRange.Start) {
		return errors.New("endDate cannot be before startDate")
	}
	return nil
}

type ReportResponse struct {
	AccountID    string                `json:"accountId"`
	Transactions []TransactionResponse `json:"transactions"`
	// Balance is the current account balance, or, when a date range is
	// applied, the total transacted amount across all accounts in that range.
	Balance        string `json:"balance"`
	BalanceIsTotal bool   `json:"balanceIsRangeTotal"`
}

type GateStatusResponse struct {
	Enabled bool `json:"enabled"`
}

type GateUpdateRequest struct {
	Enabled bool `json:"enabled"`
}
