package services

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kestrelmotors/dealerdesk-api/internal/helpers"
	"github.com/kestrelmotors/dealerdesk-api/internal/logger"
	"github.com/kestrelmotors/dealerdesk-api/internal/types/business"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FundingLedgerService computes per-vehicle funding exposure and repayment
// state. History is append-only; every view is re-summed from the full
// transaction set rather than kept as a running balance.
type FundingLedgerService struct {
	node   *snowflake.Node
	logger *zap.Logger
}

// NewFundingLedgerService creates a funding ledger service. The snowflake
// node mints repayment transaction ids.
func NewFundingLedgerService(node *snowflake.Node) *FundingLedgerService {
	return &FundingLedgerService{
		node:   node,
		logger: logger.Log,
	}
}

// ComputeLedger derives the ledger view for a vehicle's funding record.
func (s *FundingLedgerService) ComputeLedger(rec business.FundingRecord) business.LedgerView {
	totalRepaid := decimal.Zero
	for _, txn := range rec.Repayments {
		totalRepaid = totalRepaid.Add(txn.Amount)
	}

	remainingDebt := helpers.NonNegative(rec.FundingAmount.Sub(totalRepaid))

	// A vehicle with no funding is "no funding", never "repaid"; its own
	// investment figure is zero by definition, not cost minus nothing.
	ownInvestment := decimal.Zero
	if rec.FundingAmount.IsPositive() {
		ownInvestment = helpers.NonNegative(rec.CostOfPurchase.Sub(rec.FundingAmount))
	}

	return business.LedgerView{
		VehicleID:     rec.VehicleID,
		FundSourceID:  rec.FundSourceID,
		TotalRepaid:   totalRepaid,
		RemainingDebt: remainingDebt,
		OwnInvestment: ownInvestment,
		IsFullyRepaid: rec.FundingAmount.IsPositive() && remainingDebt.IsZero(),
		State:         fundingState(rec.FundingAmount, totalRepaid, remainingDebt),
	}
}

// AppendRepayment records a repayment against the funding record and returns
// a new record plus the recomputed view. The input record is not mutated;
// callers persist the returned copy.
func (s *FundingLedgerService) AppendRepayment(rec business.FundingRecord, amount decimal.Decimal, date time.Time) (business.FundingRecord, business.LedgerView, error) {
	if !amount.IsPositive() {
		return rec, business.LedgerView{}, fmt.Errorf("repayment amount must be positive, got %s", amount)
	}
	if !rec.FundingAmount.IsPositive() {
		return rec, business.LedgerView{}, fmt.Errorf("vehicle %s has no funding to repay", rec.VehicleID)
	}

	txn := business.RepaymentTransaction{
		ID:     s.node.Generate().String(),
		Amount: amount,
		Date:   date,
	}

	updated := rec
	updated.Repayments = make([]business.RepaymentTransaction, 0, len(rec.Repayments)+1)
	updated.Repayments = append(updated.Repayments, rec.Repayments...)
	updated.Repayments = append(updated.Repayments, txn)

	view := s.ComputeLedger(updated)

	if s.logger != nil {
		s.logger.Info("recorded funding repayment",
			zap.String("vehicle_id", rec.VehicleID.String()),
			zap.String("transaction_id", txn.ID),
			zap.String("amount", amount.String()),
			zap.String("state", string(view.State)))
	}

	return updated, view, nil
}

func fundingState(fundingAmount, totalRepaid, remainingDebt decimal.Decimal) business.FundingState {
	switch {
	case !fundingAmount.IsPositive():
		return business.FundingStateNone
	case remainingDebt.IsZero():
		return business.FundingStateFullyRepaid
	case totalRepaid.IsPositive():
		return business.FundingStatePartiallyRepaid
	default:
		return business.FundingStateFunded
	}
}
