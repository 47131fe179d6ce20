package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kestrelmotors/dealerdesk-api/internal/services"
	"github.com/kestrelmotors/dealerdesk-api/internal/types/business"
)

// InvoiceHandler exposes pricing computation and document composition to the
// editor and rendering frontends. Both endpoints are stateless: the caller
// submits the full invoice snapshot and gets derived values back.
type InvoiceHandler struct {
	calculator *services.PricingCalculator
	composer   *services.DocumentComposer
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(calculator *services.PricingCalculator, composer *services.DocumentComposer) *InvoiceHandler {
	return &InvoiceHandler{
		calculator: calculator,
		composer:   composer,
	}
}

// TotalsResponse carries computed totals plus any non-fatal warnings, so a
// draft can be previewed with incomplete markers.
type TotalsResponse struct {
	Totals   *business.PricingTotals `json:"totals"`
	Warnings []business.Warning      `json:"warnings,omitempty"`
}

// DocumentResponse is the composed page list handed to the rendering backend.
type DocumentResponse struct {
	Pages    []business.RenderedPage `json:"pages"`
	Totals   *business.PricingTotals `json:"totals"`
	Warnings []business.Warning      `json:"warnings,omitempty"`
}

// ComputeTotals handles POST /api/v1/invoices/totals
func (h *InvoiceHandler) ComputeTotals(c *gin.Context) {
	var rec business.InvoiceRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid invoice record", err)
		return
	}

	totals, warnings := h.calculator.ComputeTotals(rec)
	sendSuccess(c, http.StatusOK, TotalsResponse{Totals: totals, Warnings: warnings})
}

// ComposeDocument handles POST /api/v1/invoices/document. Totals are computed
// here from the same record the pages embed, so the document can never
// disagree with the editor's preview.
func (h *InvoiceHandler) ComposeDocument(c *gin.Context) {
	var rec business.InvoiceRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid invoice record", err)
		return
	}

	totals, warnings := h.calculator.ComputeTotals(rec)
	pages, err := h.composer.ComposeDocument(rec, *totals)
	if err != nil {
		handleConditionError(c, err)
		return
	}

	sendSuccess(c, http.StatusOK, DocumentResponse{
		Pages:    pages,
		Totals:   totals,
		Warnings: warnings,
	})
}
