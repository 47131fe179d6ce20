package business

import "github.com/shopspring/decimal"

// PricingTotals is the single source of truth for every monetary figure shown
// on an invoice. It is derived, never persisted independently of its inputs,
// and recomputed on every read; the editor preview, print preview and
// generated document all embed the same value verbatim.
type PricingTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	VATRate  decimal.Decimal `json:"vat_rate"`
	VAT      decimal.Decimal `json:"vat"`

	// GrandTotal is Subtotal plus VAT.
	GrandTotal decimal.Decimal `json:"grand_total"`

	TotalDepositDue  decimal.Decimal `json:"total_deposit_due"`
	DepositPaid      decimal.Decimal `json:"deposit_paid"`
	RemainingDeposit decimal.Decimal `json:"remaining_deposit"`

	// TotalPaid feeds the trade balance formula: every payment entry plus the
	// part-exchange amount paid plus the deposit already paid.
	TotalPaid decimal.Decimal `json:"total_paid"`

	// PaymentsReceived is the display total: part-exchange amount paid, all
	// card/BACS/cash entries and the recipient-appropriate overpayment when
	// positive.
	PaymentsReceived decimal.Decimal `json:"payments_received"`

	// OverpaymentLabel names the overpayment line on documents: "vehicle
	// reservation fee" for finance-company invoices, "additional deposit
	// payment" otherwise. Empty when no overpayment is included.
	OverpaymentLabel  string          `json:"overpayment_label,omitempty"`
	OverpaymentAmount decimal.Decimal `json:"overpayment_amount"`

	BalanceDue decimal.Decimal `json:"balance_due"`
}
