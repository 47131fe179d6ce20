package helpers

import (
	"time"

	"github.com/kestrelmotors/dealerdesk-api/internal/constants"
	"github.com/kestrelmotors/dealerdesk-api/internal/types/business"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Value dereferences an optional money field, treating absence as zero.
// Computation never hard-fails on an incomplete draft.
func Value(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// NonNegative clamps a derived figure at zero. Deposit and debt remainders
// must never go negative regardless of input combinations.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// DiscountAmount resolves a discount against a line amount. Percentage
// discounts are taken off the amount; unknown types resolve to zero.
func DiscountAmount(amount decimal.Decimal, discount *business.Discount) decimal.Decimal {
	if discount == nil {
		return decimal.Zero
	}
	switch discount.Type {
	case constants.DiscountTypePercentage:
		return amount.Mul(discount.Value).Div(oneHundred)
	case constants.DiscountTypeFixedAmount:
		return discount.Value
	}
	return decimal.Zero
}

// NetOfDiscount returns the line amount after its discount, never negative.
func NetOfDiscount(amount decimal.Decimal, discount *business.Discount) decimal.Decimal {
	return NonNegative(amount.Sub(DiscountAmount(amount, discount)))
}

// SumPayments totals a slice of payment entries.
func SumPayments(entries []business.PaymentEntry) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range entries {
		total = total.Add(entry.Amount)
	}
	return total
}

// FormatGBP renders a money value as a display string with the currency
// symbol and two decimal places. Formatting never alters the underlying
// value.
func FormatGBP(d decimal.Decimal) string {
	return "£" + d.StringFixed(2)
}

// FormatDate renders a date in the UK day-first convention used on
// documents.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
