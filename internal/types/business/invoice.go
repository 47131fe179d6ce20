package business

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleType distinguishes retail sales from trade sales. Trade sales carry no
// warranty value and no consumer-protection terms.
type SaleType string

const (
	SaleTypeRetail SaleType = "retail"
	SaleTypeTrade  SaleType = "trade"
)

// RecipientType identifies who the invoice is addressed to.
type RecipientType string

const (
	RecipientCustomer       RecipientType = "customer"
	RecipientFinanceCompany RecipientType = "finance_company"
	RecipientMyself         RecipientType = "myself"
)

// WarrantyLevel is the warranty tier sold with the vehicle.
type WarrantyLevel string

const (
	WarrantyLevelNone     WarrantyLevel = "none"
	WarrantyLevelStandard WarrantyLevel = "standard"
	WarrantyLevelEnhanced WarrantyLevel = "enhanced"
)

// Discount is either a fixed amount off or a percentage off the line amount.
type Discount struct {
	Type  string          `json:"type"` // "fixed_amount" or "percentage"
	Value decimal.Decimal `json:"value"`
}

// AddOn is an optional extra sold alongside the vehicle. Customer add-ons
// always count towards the subtotal; finance add-ons count only on
// finance-company invoices for non-trade sales.
type AddOn struct {
	Name     string          `json:"name"`
	Cost     decimal.Decimal `json:"cost"`
	Discount *Discount       `json:"discount,omitempty"`
}

// PaymentEntry is a single received payment of one method.
type PaymentEntry struct {
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}

// PartExchange describes a trade-in vehicle offsetting the invoice balance.
// SettlementAmount is owed to the trade-in's outstanding lender and only joins
// the subtotal on finance-company invoices with Included set.
type PartExchange struct {
	ValueOfVehicle   decimal.Decimal `json:"value_of_vehicle"`
	AmountPaid       decimal.Decimal `json:"amount_paid"`
	SettlementAmount decimal.Decimal `json:"settlement_amount"`
	Included         bool            `json:"included"`
}

// PaymentBreakdown carries every payment instrument attached to the invoice.
//
// CustomerBalanceDue and OutstandingBalance are pointers because "not
// supplied" and "zero" mean different things in the retail balance-due
// fallback chain.
type PaymentBreakdown struct {
	CashPayments []PaymentEntry `json:"cash_payments,omitempty"`
	CardPayments []PaymentEntry `json:"card_payments,omitempty"`
	BACSPayments []PaymentEntry `json:"bacs_payments,omitempty"`

	DepositAmount decimal.Decimal `json:"deposit_amount"`
	DepositPaid   decimal.Decimal `json:"deposit_paid"`
	DepositDate   *time.Time      `json:"deposit_date,omitempty"`

	PartExchange *PartExchange `json:"part_exchange,omitempty"`

	// ReservationFee is the overpayment figure consulted on finance-company
	// invoices; AdditionalDeposit is the one consulted on customer invoices.
	// Only one is ever read for a given invoice.
	ReservationFee    decimal.Decimal `json:"reservation_fee"`
	AdditionalDeposit decimal.Decimal `json:"additional_deposit"`

	// BalanceToFinance is supplied upstream by the finance-settlement flow and
	// is trusted verbatim, never re-derived.
	BalanceToFinance decimal.Decimal `json:"balance_to_finance"`

	CustomerBalanceDue *decimal.Decimal `json:"customer_balance_due,omitempty"`
	OutstandingBalance *decimal.Decimal `json:"outstanding_balance,omitempty"`
}

// Warranty holds the warranty selection. These fields drive visibility only;
// warranty money lives on the pricing block.
type Warranty struct {
	Level         WarrantyLevel `json:"level"`
	InHouse       bool          `json:"in_house"`
	Enhanced      bool          `json:"enhanced"`
	EnhancedLevel string        `json:"enhanced_level,omitempty"`
	Details       string        `json:"details,omitempty"`
}

// Vehicle is echoed through to documents; the calculator never inspects it.
type Vehicle struct {
	ID           uuid.UUID `json:"id"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Registration string    `json:"registration"`
	VIN          string    `json:"vin"`
	Mileage      int64     `json:"mileage"`
	Year         int       `json:"year"`
}

// Party is a displayable name-and-address block.
type Party struct {
	Name         string `json:"name"`
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city,omitempty"`
	Postcode     string `json:"postcode,omitempty"`
}

// InvoiceRecord is the immutable snapshot all computation runs against. Edits
// upstream produce a fresh record (copy-on-write), so recomputed totals are
// always consistent with the exact inputs that produced them.
type InvoiceRecord struct {
	ID            uuid.UUID     `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	InvoiceDate   time.Time     `json:"invoice_date"`
	DueDate       *time.Time    `json:"due_date,omitempty"`
	SaleType      SaleType      `json:"sale_type"`
	RecipientType RecipientType `json:"recipient_type"`

	Vehicle  Vehicle `json:"vehicle"`
	Customer Party   `json:"customer"`
	Dealer   Party   `json:"dealer"`

	// FinanceCompany is display-only and meaningful only when RecipientType is
	// finance_company.
	FinanceCompany *Party `json:"finance_company,omitempty"`

	// SalePrice is a pointer so a draft with no price yet can be told apart
	// from a genuine zero and reported as a warning.
	SalePrice                *decimal.Decimal `json:"sale_price,omitempty"`
	SalePriceDiscount        *Discount        `json:"sale_price_discount,omitempty"`
	WarrantyPrice            decimal.Decimal  `json:"warranty_price"`
	WarrantyDiscount         *Discount        `json:"warranty_discount,omitempty"`
	EnhancedWarrantyPrice    decimal.Decimal  `json:"enhanced_warranty_price"`
	EnhancedWarrantyDiscount *Discount        `json:"enhanced_warranty_discount,omitempty"`
	DeliveryCost             decimal.Decimal  `json:"delivery_cost"`
	DeliveryDiscount         *Discount        `json:"delivery_discount,omitempty"`

	CustomerAddOns []AddOn `json:"customer_add_ons,omitempty"`
	FinanceAddOns  []AddOn `json:"finance_add_ons,omitempty"`

	Warranty Warranty         `json:"warranty"`
	Payment  PaymentBreakdown `json:"payment"`
}

// Warning is a non-fatal computation finding reported alongside results so an
// incomplete draft can still be previewed.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
