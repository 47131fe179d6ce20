package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kestrelmotors/dealerdesk-api/internal/services"
	"github.com/kestrelmotors/dealerdesk-api/internal/types/business"
	"github.com/shopspring/decimal"
)

// FundingHandler exposes the per-vehicle funding ledger to the reporting UI.
type FundingHandler struct {
	ledger *services.FundingLedgerService
}

// NewFundingHandler creates a new funding handler
func NewFundingHandler(ledger *services.FundingLedgerService) *FundingHandler {
	return &FundingHandler{ledger: ledger}
}

// RepaymentRequest appends one repayment to a submitted funding history. The
// idempotency key is the caller's dedupe handle against double submission;
// the ledger itself just re-sums whatever history it is given.
type RepaymentRequest struct {
	Record         business.FundingRecord `json:"record"`
	Amount         decimal.Decimal        `json:"amount"`
	Date           *time.Time             `json:"date,omitempty"`
	IdempotencyKey string                 `json:"idempotency_key,omitempty"`
}

// RepaymentResponse returns the extended history and recomputed view; the
// caller persists both.
type RepaymentResponse struct {
	Record business.FundingRecord `json:"record"`
	Ledger business.LedgerView    `json:"ledger"`
}

// ComputeLedger handles POST /api/v1/funding/ledger
func (h *FundingHandler) ComputeLedger(c *gin.Context) {
	var rec business.FundingRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid funding record", err)
		return
	}

	sendSuccess(c, http.StatusOK, h.ledger.ComputeLedger(rec))
}

// AppendRepayment handles POST /api/v1/funding/repayments
func (h *FundingHandler) AppendRepayment(c *gin.Context) {
	var req RepaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid repayment request", err)
		return
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = *req.Date
	}

	record, view, err := h.ledger.AppendRepayment(req.Record, req.Amount, date)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Failed to record repayment", err)
		return
	}

	sendSuccess(c, http.StatusOK, RepaymentResponse{Record: record, Ledger: view})
}
