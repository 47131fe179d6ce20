package services_test

import (
	"testing"
	"time"

	"github.com/kestrelmotors/dealerdesk-api/internal/services"
	"github.com/kestrelmotors/dealerdesk-api/internal/types/business"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComposer() (*services.DocumentComposer, *services.PricingCalculator) {
	evaluator := services.NewConditionEvaluator()
	return services.NewDocumentComposer(evaluator, services.NewStaticTerms()),
		services.NewPricingCalculator(decimal.Zero)
}

func documentInvoice() business.InvoiceRecord {
	rec := retailInvoice()
	rec.InvoiceDate = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	rec.Vehicle = business.Vehicle{
		Make: "Ford", Model: "Focus", Registration: "KM26 XYZ", VIN: "WF0AXXGCDA1234567",
	}
	rec.Dealer = business.Party{Name: "Kestrel Motors Ltd"}
	rec.Customer = business.Party{Name: "A. Driver"}
	rec.Payment.CustomerBalanceDue = decPtr("8000")
	return rec
}

func pageIDs(pages []business.RenderedPage) []business.PageID {
	ids := make([]business.PageID, len(pages))
	for i, p := range pages {
		ids[i] = p.ID
	}
	return ids
}

func TestDocumentComposer_PageSet(t *testing.T) {
	composer, calculator := newComposer()

	tests := []struct {
		name          string
		saleType      business.SaleType
		recipientType business.RecipientType
		inHouse       bool
		level         business.WarrantyLevel
		wantPages     []business.PageID
	}{
		{
			name:          "retail customer with in-house warranty",
			saleType:      business.SaleTypeRetail,
			recipientType: business.RecipientCustomer,
			inHouse:       true,
			level:         business.WarrantyLevelStandard,
			wantPages: []business.PageID{
				business.PageCore, business.PageChecklist,
				business.PageStandardTerms, business.PageInHouseWarrantyTerms,
			},
		},
		{
			name:          "retail customer with external warranty",
			saleType:      business.SaleTypeRetail,
			recipientType: business.RecipientCustomer,
			inHouse:       false,
			level:         business.WarrantyLevelStandard,
			wantPages: []business.PageID{
				business.PageCore, business.PageChecklist,
				business.PageStandardTerms, business.PageExternalWarrantyTerms,
			},
		},
		{
			name:          "retail customer with no warranty",
			saleType:      business.SaleTypeRetail,
			recipientType: business.RecipientCustomer,
			inHouse:       false,
			level:         business.WarrantyLevelNone,
			wantPages: []business.PageID{
				business.PageCore, business.PageChecklist, business.PageStandardTerms,
			},
		},
		{
			name:          "trade sale gets no terms pages",
			saleType:      business.SaleTypeTrade,
			recipientType: business.RecipientCustomer,
			inHouse:       false,
			level:         business.WarrantyLevelNone,
			wantPages:     []business.PageID{business.PageCore, business.PageChecklist},
		},
		{
			name:          "finance company invoice excludes in-house warranty page",
			saleType:      business.SaleTypeRetail,
			recipientType: business.RecipientFinanceCompany,
			inHouse:       true,
			level:         business.WarrantyLevelStandard,
			wantPages: []business.PageID{
				business.PageCore, business.PageChecklist, business.PageStandardTerms,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := documentInvoice()
			rec.SaleType = tt.saleType
			rec.RecipientType = tt.recipientType
			rec.Warranty.InHouse = tt.inHouse
			rec.Warranty.Level = tt.level

			totals, _ := calculator.ComputeTotals(rec)
			pages, err := composer.ComposeDocument(rec, *totals)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPages, pageIDs(pages), "pages in canonical order, invisible omitted")
		})
	}
}

func TestDocumentComposer_PageSetIgnoresUnrelatedFields(t *testing.T) {
	composer, calculator := newComposer()

	base := documentInvoice()
	base.Warranty.Level = business.WarrantyLevelStandard
	totals, _ := calculator.ComputeTotals(base)
	basePages, err := composer.ComposeDocument(base, *totals)
	require.NoError(t, err)

	// Change everything except the four driving attributes.
	changed := base
	changed.SalePrice = decPtr("99999")
	changed.DeliveryCost = dec("750")
	changed.Vehicle.Mileage = 120000
	changed.Payment.DepositAmount = dec("5000")
	changed.CustomerAddOns = []business.AddOn{{Name: "Mats", Cost: dec("40")}}

	changedTotals, _ := calculator.ComputeTotals(changed)
	changedPages, err := composer.ComposeDocument(changed, *changedTotals)
	require.NoError(t, err)

	assert.Equal(t, pageIDs(basePages), pageIDs(changedPages))
}

func TestDocumentComposer_CorePageEmbedsCalculatorTotals(t *testing.T) {
	composer, calculator := newComposer()

	rec := documentInvoice()
	rec.DeliveryCost = dec("500")
	rec.Payment.CardPayments = []business.PaymentEntry{{Amount: dec("2000")}}

	totals, _ := calculator.ComputeTotals(rec)
	pages, err := composer.ComposeDocument(rec, *totals)
	require.NoError(t, err)

	core := pages[0]
	require.Equal(t, business.PageCore, core.ID)
	assert.Equal(t, "£10500.00", core.Fields["subtotal"])
	assert.Equal(t, "£2000.00", core.Fields["payments_received"])
	assert.Equal(t, "£8000.00", core.Fields["balance_due"])
	assert.Equal(t, "14/03/2026", core.Fields["invoice_date"])

	require.NotEmpty(t, core.LineItems)
	assert.Equal(t, "Ford Focus (KM26 XYZ)", core.LineItems[0].Description)
	assert.Equal(t, "£10000.00", core.LineItems[0].Amount)
}

func TestDocumentComposer_ChecklistContentVariesBySaleType(t *testing.T) {
	composer, calculator := newComposer()

	retail := documentInvoice()
	totals, _ := calculator.ComputeTotals(retail)
	retailPages, err := composer.ComposeDocument(retail, *totals)
	require.NoError(t, err)
	assert.Equal(t, "Vehicle Handover Checklist", retailPages[1].Title)

	trade := documentInvoice()
	trade.SaleType = business.SaleTypeTrade
	tradeTotals, _ := calculator.ComputeTotals(trade)
	tradePages, err := composer.ComposeDocument(trade, *tradeTotals)
	require.NoError(t, err)
	assert.Equal(t, "Trade Sale Disclaimer", tradePages[1].Title)
	assert.Contains(t, tradePages[1].Body, "trade sale")
}

func TestDocumentComposer_TradeLineItemsOmitWarranty(t *testing.T) {
	composer, calculator := newComposer()

	rec := documentInvoice()
	rec.SaleType = business.SaleTypeTrade
	rec.WarrantyPrice = dec("800")

	totals, _ := calculator.ComputeTotals(rec)
	pages, err := composer.ComposeDocument(rec, *totals)
	require.NoError(t, err)

	for _, item := range pages[0].LineItems {
		assert.NotEqual(t, "Warranty", item.Description)
	}
}
