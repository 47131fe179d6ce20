package constants

// Environments
const (
	ProdEnvironment  = "production"
	DevEnvironment   = "development"
	LocalEnvironment = "local"
)

// Log levels
const (
	ErrorLevel = "error"
)

// Invoice flavours
const (
	InvoiceTypeSale     = "sale"
	InvoiceTypePurchase = "purchase"
)

// Discount types
const (
	DiscountTypeFixedAmount = "fixed_amount"
	DiscountTypePercentage  = "percentage"
)

// Payment methods
const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
	PaymentMethodBACS = "bacs"
)
