package business

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FundingState is the lifecycle of a vehicle-funding relationship. A vehicle
// with no funding at all is classified NoFunding, never FullyRepaid.
type FundingState string

const (
	FundingStateNone            FundingState = "no_funding"
	FundingStateFunded          FundingState = "funded"
	FundingStatePartiallyRepaid FundingState = "partially_repaid"
	FundingStateFullyRepaid     FundingState = "fully_repaid"
)

// RepaymentTransaction is one repayment against a vehicle's funding. History
// is append-only; corrections are new transactions, never edits.
type RepaymentTransaction struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}

// FundingRecord is the per-vehicle funding snapshot the ledger computes from.
type FundingRecord struct {
	VehicleID      uuid.UUID              `json:"vehicle_id"`
	FundSourceID   uuid.UUID              `json:"fund_source_id"`
	CostOfPurchase decimal.Decimal        `json:"cost_of_purchase"`
	FundingAmount  decimal.Decimal        `json:"funding_amount"`
	Repayments     []RepaymentTransaction `json:"repayments,omitempty"`
}

// LedgerView answers "how much is owed, to whom, and is it settled" for one
// vehicle. All figures are re-derived from the transaction set on every read.
type LedgerView struct {
	VehicleID     uuid.UUID       `json:"vehicle_id"`
	FundSourceID  uuid.UUID       `json:"fund_source_id"`
	TotalRepaid   decimal.Decimal `json:"total_repaid"`
	RemainingDebt decimal.Decimal `json:"remaining_debt"`
	OwnInvestment decimal.Decimal `json:"own_investment"`
	IsFullyRepaid bool            `json:"is_fully_repaid"`
	State         FundingState    `json:"state"`
}
