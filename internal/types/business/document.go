package business

// PageID names one logical page of the generated invoice document.
type PageID string

const (
	PageCore                  PageID = "core"
	PageChecklist             PageID = "checklist"
	PageStandardTerms         PageID = "standard_terms"
	PageInHouseWarrantyTerms  PageID = "in_house_warranty_terms"
	PageExternalWarrantyTerms PageID = "external_warranty_terms"
)

// DocumentLineItem is a formatted money line on the core page. Amounts are
// display strings; the underlying numbers live in PricingTotals.
type DocumentLineItem struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// RenderedPage is one page handed to the rendering backend. Fields are
// pre-formatted display values; Body carries opaque terms text unmodified.
type RenderedPage struct {
	ID        PageID             `json:"id"`
	Title     string             `json:"title"`
	Fields    map[string]string  `json:"fields,omitempty"`
	LineItems []DocumentLineItem `json:"line_items,omitempty"`
	Body      string             `json:"body,omitempty"`
}
