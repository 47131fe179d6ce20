package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/kestrelmotors/dealerdesk-api/internal/handlers"
	"github.com/kestrelmotors/dealerdesk-api/internal/logger"
	"github.com/kestrelmotors/dealerdesk-api/internal/services"
	"github.com/kestrelmotors/dealerdesk-api/internal/types/business"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("test")
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	evaluator := services.NewConditionEvaluator()
	calculator := services.NewPricingCalculator(decimal.Zero)
	composer := services.NewDocumentComposer(evaluator, services.NewStaticTerms())
	ledger := services.NewFundingLedgerService(node)

	invoiceHandler := handlers.NewInvoiceHandler(calculator, composer)
	conditionHandler := handlers.NewConditionHandler(evaluator)
	fundingHandler := handlers.NewFundingHandler(ledger)

	router := gin.New()
	router.POST("/api/v1/invoices/totals", invoiceHandler.ComputeTotals)
	router.POST("/api/v1/invoices/document", invoiceHandler.ComposeDocument)
	router.GET("/api/v1/conditions", conditionHandler.ListConditions)
	router.POST("/api/v1/conditions/evaluate", conditionHandler.Evaluate)
	router.POST("/api/v1/funding/ledger", fundingHandler.ComputeLedger)
	router.POST("/api/v1/funding/repayments", fundingHandler.AppendRepayment)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestComputeTotalsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	salePrice := decimal.RequireFromString("10000")
	balance := decimal.RequireFromString("8000")
	rec := business.InvoiceRecord{
		InvoiceNumber: "INV-2026-0042",
		SaleType:      business.SaleTypeRetail,
		RecipientType: business.RecipientCustomer,
		SalePrice:     &salePrice,
		DeliveryCost:  decimal.RequireFromString("500"),
	}
	rec.Payment.CustomerBalanceDue = &balance

	w := postJSON(t, router, "/api/v1/invoices/totals", rec)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.TotalsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Totals)
	assert.True(t, resp.Totals.Subtotal.Equal(decimal.RequireFromString("10500")))
	assert.True(t, resp.Totals.BalanceDue.Equal(balance))
}

func TestComposeDocumentEndpoint(t *testing.T) {
	router := newTestRouter(t)

	salePrice := decimal.RequireFromString("10000")
	rec := business.InvoiceRecord{
		InvoiceNumber: "INV-2026-0042",
		SaleType:      business.SaleTypeTrade,
		RecipientType: business.RecipientCustomer,
		SalePrice:     &salePrice,
	}

	w := postJSON(t, router, "/api/v1/invoices/document", rec)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.DocumentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Pages, 2, "trade sale composes core and disclaimer only")
	assert.Equal(t, business.PageCore, resp.Pages[0].ID)
	assert.Equal(t, business.PageChecklist, resp.Pages[1].ID)
}

func TestEvaluateEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := handlers.EvaluateRequest{
		ConditionIDs: []string{services.ConditionWarrantyDetails},
		Snapshot:     business.Snapshot{business.FieldSaleType: "retail"},
	}

	w := postJSON(t, router, "/api/v1/conditions/evaluate", req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.EvaluateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Results[services.ConditionWarrantyDetails])
}

func TestEvaluateEndpoint_UnknownConditionIsBadRequest(t *testing.T) {
	router := newTestRouter(t)

	req := handlers.EvaluateRequest{
		ConditionIDs: []string{"notARealCondition"},
		Snapshot:     business.Snapshot{},
	}

	w := postJSON(t, router, "/api/v1/conditions/evaluate", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEvaluateEndpoint_ChangedFieldScopesEvaluation(t *testing.T) {
	router := newTestRouter(t)

	req := handlers.EvaluateRequest{
		ChangedField: business.FieldEnhancedWarranty,
		Snapshot: business.Snapshot{
			business.FieldSaleType:         "retail",
			business.FieldEnhancedWarranty: true,
		},
	}

	w := postJSON(t, router, "/api/v1/conditions/evaluate", req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.EvaluateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 1, "only conditions depending on the changed field are evaluated")
	assert.True(t, resp.Results[services.ConditionEnhancedWarrantyDetails])
}

func TestFundingEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := business.FundingRecord{
		CostOfPurchase: decimal.RequireFromString("12000"),
		FundingAmount:  decimal.RequireFromString("8000"),
	}

	w := postJSON(t, router, "/api/v1/funding/ledger", rec)
	require.Equal(t, http.StatusOK, w.Code)

	var view business.LedgerView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, business.FundingStateFunded, view.State)

	repay := handlers.RepaymentRequest{
		Record: rec,
		Amount: decimal.RequireFromString("8000"),
	}
	w = postJSON(t, router, "/api/v1/funding/repayments", repay)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.RepaymentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Record.Repayments, 1)
	assert.True(t, resp.Ledger.IsFullyRepaid)

	// Rejected repayment on an unfunded vehicle.
	bad := handlers.RepaymentRequest{
		Record: business.FundingRecord{},
		Amount: decimal.RequireFromString("100"),
	}
	w = postJSON(t, router, "/api/v1/funding/repayments", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
