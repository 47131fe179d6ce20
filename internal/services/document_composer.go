package services

import (
	"fmt"

	"github.com/kestrelmotors/dealerdesk-api/internal/helpers"
	"github.com/kestrelmotors/dealerdesk-api/internal/logger"
	"github.com/kestrelmotors/dealerdesk-api/internal/types/business"
	"go.uber.org/zap"
)

// TermsProvider supplies the free-text terms blocks embedded in document
// pages. The text is opaque to the composer and passed through unmodified.
type TermsProvider interface {
	StandardTerms() string
	InHouseWarrantyTerms() string
	ExternalWarrantyTerms(level business.WarrantyLevel) string
	RetailChecklist() string
	TradeDisclaimer() string
}

// DocumentComposer decides which pages of the final document exist and fills
// each with formatted content. It is a pure consumer of PricingCalculator
// output: no total is ever re-derived here, and page visibility runs through
// the same condition evaluator the editor uses, so the preview and the
// generated artifact always agree.
type DocumentComposer struct {
	evaluator *ConditionEvaluator
	terms     TermsProvider
	logger    *zap.Logger
}

// NewDocumentComposer creates a document composer.
func NewDocumentComposer(evaluator *ConditionEvaluator, terms TermsProvider) *DocumentComposer {
	return &DocumentComposer{
		evaluator: evaluator,
		terms:     terms,
		logger:    logger.Log,
	}
}

// ComposeDocument returns the ordered list of visible pages for the invoice.
// Invisible pages are omitted entirely, never rendered blank. The page set is
// a function of sale type, recipient type and warranty attributes only.
func (dc *DocumentComposer) ComposeDocument(rec business.InvoiceRecord, totals business.PricingTotals) ([]business.RenderedPage, error) {
	snapshot := business.SnapshotFromInvoice(rec)

	pages := []business.RenderedPage{
		dc.corePage(rec, totals),
		dc.checklistPage(rec),
	}

	gated := []struct {
		conditionID string
		build       func() business.RenderedPage
	}{
		{ConditionPageStandardTerms, func() business.RenderedPage {
			return business.RenderedPage{
				ID:    business.PageStandardTerms,
				Title: "Terms & Conditions of Sale",
				Body:  dc.terms.StandardTerms(),
			}
		}},
		{ConditionPageInHouseWarrantyTerms, func() business.RenderedPage {
			return business.RenderedPage{
				ID:    business.PageInHouseWarrantyTerms,
				Title: "Engine & Transmission Warranty",
				Body:  dc.terms.InHouseWarrantyTerms(),
			}
		}},
		{ConditionPageExternalWarrantyTerms, func() business.RenderedPage {
			return business.RenderedPage{
				ID:    business.PageExternalWarrantyTerms,
				Title: "Warranty Terms",
				Body:  dc.terms.ExternalWarrantyTerms(rec.Warranty.Level),
			}
		}},
	}

	for _, page := range gated {
		visible, err := dc.evaluator.EvaluateVisibility(page.conditionID, snapshot)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate page visibility: %w", err)
		}
		if visible {
			pages = append(pages, page.build())
		}
	}

	if dc.logger != nil {
		dc.logger.Debug("composed document",
			zap.String("invoice_number", rec.InvoiceNumber),
			zap.Int("page_count", len(pages)))
	}

	return pages, nil
}

// corePage carries parties, vehicle, line items and totals. Every money value
// comes from PricingTotals verbatim; this page only formats.
func (dc *DocumentComposer) corePage(rec business.InvoiceRecord, totals business.PricingTotals) business.RenderedPage {
	fields := map[string]string{
		"invoice_number":    rec.InvoiceNumber,
		"invoice_date":      helpers.FormatDate(rec.InvoiceDate),
		"sale_type":         string(rec.SaleType),
		"recipient_type":    string(rec.RecipientType),
		"dealer":            rec.Dealer.Name,
		"customer":          rec.Customer.Name,
		"vehicle":           fmt.Sprintf("%s %s", rec.Vehicle.Make, rec.Vehicle.Model),
		"registration":      rec.Vehicle.Registration,
		"vin":               rec.Vehicle.VIN,
		"subtotal":          helpers.FormatGBP(totals.Subtotal),
		"vat":               helpers.FormatGBP(totals.VAT),
		"grand_total":       helpers.FormatGBP(totals.GrandTotal),
		"payments_received": helpers.FormatGBP(totals.PaymentsReceived),
		"remaining_deposit": helpers.FormatGBP(totals.RemainingDeposit),
		"balance_due":       helpers.FormatGBP(totals.BalanceDue),
	}
	if rec.DueDate != nil {
		fields["due_date"] = helpers.FormatDate(*rec.DueDate)
	}
	if rec.FinanceCompany != nil && rec.RecipientType == business.RecipientFinanceCompany {
		fields["finance_company"] = rec.FinanceCompany.Name
	}

	return business.RenderedPage{
		ID:        business.PageCore,
		Title:     "Invoice " + rec.InvoiceNumber,
		Fields:    fields,
		LineItems: dc.coreLineItems(rec, totals),
	}
}

// coreLineItems mirrors the subtotal inclusion rules for display. Excluded
// lines are omitted, not shown at zero.
func (dc *DocumentComposer) coreLineItems(rec business.InvoiceRecord, totals business.PricingTotals) []business.DocumentLineItem {
	items := []business.DocumentLineItem{
		{
			Description: fmt.Sprintf("%s %s (%s)", rec.Vehicle.Make, rec.Vehicle.Model, rec.Vehicle.Registration),
			Amount:      helpers.FormatGBP(helpers.NetOfDiscount(helpers.Value(rec.SalePrice), rec.SalePriceDiscount)),
		},
	}

	if rec.SaleType != business.SaleTypeTrade {
		if rec.WarrantyPrice.IsPositive() {
			items = append(items, business.DocumentLineItem{
				Description: "Warranty",
				Amount:      helpers.FormatGBP(helpers.NetOfDiscount(rec.WarrantyPrice, rec.WarrantyDiscount)),
			})
		}
		if rec.EnhancedWarrantyPrice.IsPositive() {
			items = append(items, business.DocumentLineItem{
				Description: "Enhanced warranty",
				Amount:      helpers.FormatGBP(helpers.NetOfDiscount(rec.EnhancedWarrantyPrice, rec.EnhancedWarrantyDiscount)),
			})
		}
	}

	if rec.DeliveryCost.IsPositive() {
		items = append(items, business.DocumentLineItem{
			Description: "Delivery",
			Amount:      helpers.FormatGBP(helpers.NetOfDiscount(rec.DeliveryCost, rec.DeliveryDiscount)),
		})
	}

	for _, addOn := range rec.CustomerAddOns {
		items = append(items, business.DocumentLineItem{
			Description: addOn.Name,
			Amount:      helpers.FormatGBP(helpers.NetOfDiscount(addOn.Cost, addOn.Discount)),
		})
	}

	if rec.SaleType != business.SaleTypeTrade && rec.RecipientType == business.RecipientFinanceCompany {
		for _, addOn := range rec.FinanceAddOns {
			items = append(items, business.DocumentLineItem{
				Description: addOn.Name,
				Amount:      helpers.FormatGBP(helpers.NetOfDiscount(addOn.Cost, addOn.Discount)),
			})
		}
	}

	if rec.RecipientType == business.RecipientFinanceCompany &&
		rec.Payment.PartExchange != nil && rec.Payment.PartExchange.Included {
		items = append(items, business.DocumentLineItem{
			Description: "Part-exchange settlement",
			Amount:      helpers.FormatGBP(rec.Payment.PartExchange.SettlementAmount),
		})
	}

	if totals.OverpaymentLabel != "" {
		items = append(items, business.DocumentLineItem{
			Description: totals.OverpaymentLabel,
			Amount:      helpers.FormatGBP(totals.OverpaymentAmount),
		})
	}

	return items
}

// checklistPage is always present; its content, not its visibility, differs
// by sale type.
func (dc *DocumentComposer) checklistPage(rec business.InvoiceRecord) business.RenderedPage {
	if rec.SaleType == business.SaleTypeTrade {
		return business.RenderedPage{
			ID:    business.PageChecklist,
			Title: "Trade Sale Disclaimer",
			Body:  dc.terms.TradeDisclaimer(),
		}
	}
	return business.RenderedPage{
		ID:    business.PageChecklist,
		Title: "Vehicle Handover Checklist",
		Body:  dc.terms.RetailChecklist(),
	}
}
