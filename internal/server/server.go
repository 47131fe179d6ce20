package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kestrelmotors/dealerdesk-api/internal/handlers"
	"github.com/kestrelmotors/dealerdesk-api/internal/logger"
	"github.com/kestrelmotors/dealerdesk-api/internal/services"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Handler Definitions
var (
	invoiceHandler   *handlers.InvoiceHandler
	conditionHandler *handlers.ConditionHandler
	fundingHandler   *handlers.FundingHandler
)

// InitializeHandlers wires the computation services into their handlers. The
// engine holds no database: every request carries its own snapshot.
func InitializeHandlers() {
	vatRate, err := decimal.NewFromString(getEnvWithDefault("VAT_RATE", "0"))
	if err != nil {
		logger.Fatal("Invalid VAT_RATE", zap.Error(err))
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		logger.Fatal("Unable to create snowflake node", zap.Error(err))
	}

	evaluator := services.NewConditionEvaluator()
	calculator := services.NewPricingCalculator(vatRate)
	composer := services.NewDocumentComposer(evaluator, services.NewStaticTerms())
	ledger := services.NewFundingLedgerService(node)

	invoiceHandler = handlers.NewInvoiceHandler(calculator, composer)
	conditionHandler = handlers.NewConditionHandler(evaluator)
	fundingHandler = handlers.NewFundingHandler(ledger)
}

// InitializeRoutes registers middleware and the API v1 routes.
func InitializeRoutes(router *gin.Engine) {
	// Configure and apply CORS middleware
	router.Use(configureCORS())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		invoices := v1.Group("/invoices")
		{
			invoices.POST("/totals", invoiceHandler.ComputeTotals)
			invoices.POST("/document", invoiceHandler.ComposeDocument)
		}

		conditions := v1.Group("/conditions")
		{
			conditions.GET("", conditionHandler.ListConditions)
			conditions.POST("/evaluate", conditionHandler.Evaluate)
		}

		funding := v1.Group("/funding")
		{
			funding.POST("/ledger", fundingHandler.ComputeLedger)
			funding.POST("/repayments", fundingHandler.AppendRepayment)
		}
	}
}

func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	// Get allowed origins from environment variable
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		// Default to localhost if not set
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	} else {
		origins := strings.Split(originsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		corsConfig.AllowOrigins = origins
	}

	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Idempotency-Key"}
	corsConfig.AllowCredentials = os.Getenv("CORS_ALLOW_CREDENTIALS") == "true"

	return cors.New(corsConfig)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
