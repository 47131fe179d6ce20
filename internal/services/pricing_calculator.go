package services

import (
	"github.com/kestrelmotors/dealerdesk-api/internal/helpers"
	"github.com/kestrelmotors/dealerdesk-api/internal/logger"
	"github.com/kestrelmotors/dealerdesk-api/internal/types/business"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PricingCalculator turns an invoice record into a consistent set of monetary
// totals. Every rendering surface embeds its output rather than re-deriving
// any figure, so the editor preview, print preview and generated document can
// never disagree on arithmetic.
//
// The calculator never fails: missing numeric inputs are treated as zero and
// reported as warnings so a draft can still be previewed.
type PricingCalculator struct {
	vatRate decimal.Decimal
	logger  *zap.Logger
}

// NewPricingCalculator creates a pricing calculator with the given VAT rate
// expressed as a percentage. The rate is zero for used-vehicle sales today
// but stays parametric.
func NewPricingCalculator(vatRate decimal.Decimal) *PricingCalculator {
	return &PricingCalculator{
		vatRate: vatRate,
		logger:  logger.Log,
	}
}

// ComputeTotals derives PricingTotals from an invoice record. It is a pure
// function of its input: calling it twice on the same record yields identical
// totals, and it is safe to call concurrently for different invoices.
func (c *PricingCalculator) ComputeTotals(rec business.InvoiceRecord) (*business.PricingTotals, []business.Warning) {
	var warnings []business.Warning

	if rec.SalePrice == nil {
		warnings = append(warnings, business.Warning{
			Field:   "sale_price",
			Message: "sale price is missing; treated as zero",
		})
	}

	subtotal := c.computeSubtotal(rec)
	vat := subtotal.Mul(c.vatRate).Div(decimal.NewFromInt(100))

	pay := rec.Payment

	cardTotal := helpers.SumPayments(pay.CardPayments)
	bacsTotal := helpers.SumPayments(pay.BACSPayments)
	cashTotal := helpers.SumPayments(pay.CashPayments)

	pxAmountPaid := decimal.Zero
	if pay.PartExchange != nil {
		pxAmountPaid = pay.PartExchange.AmountPaid
	}

	// Trade invoices fold the deposit into "payments".
	totalPaid := cardTotal.Add(bacsTotal).Add(cashTotal).Add(pxAmountPaid).Add(pay.DepositPaid)

	overpaymentLabel, overpaymentAmount := eligibleOverpayment(rec)
	paymentsReceived := pxAmountPaid.Add(cardTotal).Add(bacsTotal).Add(cashTotal).Add(overpaymentAmount)

	balanceDue, balanceWarnings := c.computeBalanceDue(rec, subtotal, totalPaid)
	warnings = append(warnings, balanceWarnings...)

	totals := &business.PricingTotals{
		Subtotal:          subtotal,
		VATRate:           c.vatRate,
		VAT:               vat,
		GrandTotal:        subtotal.Add(vat),
		TotalDepositDue:   pay.DepositAmount,
		DepositPaid:       pay.DepositPaid,
		RemainingDeposit:  helpers.NonNegative(pay.DepositAmount.Sub(pay.DepositPaid)),
		TotalPaid:         totalPaid,
		PaymentsReceived:  paymentsReceived,
		OverpaymentLabel:  overpaymentLabel,
		OverpaymentAmount: overpaymentAmount,
		BalanceDue:        balanceDue,
	}

	if len(warnings) > 0 && c.logger != nil {
		c.logger.Debug("computed totals with warnings",
			zap.String("invoice_number", rec.InvoiceNumber),
			zap.Int("warning_count", len(warnings)))
	}

	return totals, warnings
}

// computeSubtotal applies the line-item inclusion rules. Each included line
// contributes its post-discount amount, never negative.
func (c *PricingCalculator) computeSubtotal(rec business.InvoiceRecord) decimal.Decimal {
	subtotal := helpers.NetOfDiscount(helpers.Value(rec.SalePrice), rec.SalePriceDiscount)

	// Trade sales exclude all warranty value.
	if rec.SaleType != business.SaleTypeTrade {
		subtotal = subtotal.Add(helpers.NetOfDiscount(rec.WarrantyPrice, rec.WarrantyDiscount))
		subtotal = subtotal.Add(helpers.NetOfDiscount(rec.EnhancedWarrantyPrice, rec.EnhancedWarrantyDiscount))
	}

	subtotal = subtotal.Add(helpers.NetOfDiscount(rec.DeliveryCost, rec.DeliveryDiscount))

	for _, addOn := range rec.CustomerAddOns {
		subtotal = subtotal.Add(helpers.NetOfDiscount(addOn.Cost, addOn.Discount))
	}

	// Finance add-ons flow through this document only on finance-company
	// invoices for non-trade sales; otherwise their stored cost is
	// display-only.
	if rec.SaleType != business.SaleTypeTrade && rec.RecipientType == business.RecipientFinanceCompany {
		for _, addOn := range rec.FinanceAddOns {
			subtotal = subtotal.Add(helpers.NetOfDiscount(addOn.Cost, addOn.Discount))
		}
	}

	if rec.RecipientType == business.RecipientFinanceCompany &&
		rec.Payment.PartExchange != nil && rec.Payment.PartExchange.Included {
		subtotal = subtotal.Add(rec.Payment.PartExchange.SettlementAmount)
	}

	return subtotal
}

// computeBalanceDue selects the balance formula by recipient then sale type.
// Every path clamps at zero: a totals surface never shows a negative due.
func (c *PricingCalculator) computeBalanceDue(rec business.InvoiceRecord, subtotal, totalPaid decimal.Decimal) (decimal.Decimal, []business.Warning) {
	var warnings []business.Warning

	switch {
	case rec.RecipientType == business.RecipientFinanceCompany:
		// Finance settlement math lives upstream; the supplied figure is
		// trusted, not re-derived.
		balance := rec.Payment.BalanceToFinance
		if balance.IsNegative() {
			warnings = append(warnings, business.Warning{
				Field:   "balance_to_finance",
				Message: "balance to finance is negative; clamped to zero",
			})
		}
		return helpers.NonNegative(balance), warnings

	case rec.SaleType == business.SaleTypeTrade:
		return helpers.NonNegative(subtotal.Sub(totalPaid)), warnings

	default:
		// Retail, customer-billed: first non-nil source of truth wins.
		if rec.Payment.CustomerBalanceDue != nil {
			return helpers.NonNegative(*rec.Payment.CustomerBalanceDue), warnings
		}
		if rec.Payment.OutstandingBalance != nil {
			return helpers.NonNegative(*rec.Payment.OutstandingBalance), warnings
		}
		warnings = append(warnings, business.Warning{
			Field:   "balance_due",
			Message: "no balance due supplied for retail invoice; treated as zero",
		})
		return decimal.Zero, warnings
	}
}

// eligibleOverpayment picks the one overpayment field this recipient type
// consults and includes it only when positive, with its document label.
func eligibleOverpayment(rec business.InvoiceRecord) (string, decimal.Decimal) {
	if rec.RecipientType == business.RecipientFinanceCompany {
		if rec.Payment.ReservationFee.IsPositive() {
			return "vehicle reservation fee", rec.Payment.ReservationFee
		}
		return "", decimal.Zero
	}
	if rec.Payment.AdditionalDeposit.IsPositive() {
		return "additional deposit payment", rec.Payment.AdditionalDeposit
	}
	return "", decimal.Zero
}
