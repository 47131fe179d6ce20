package business

// Form field names shared between the interactive editor and document
// composition. Conditions declare dependencies in terms of these names.
const (
	FieldSaleType         = "saleType"
	FieldRecipientType    = "recipientType"
	FieldInvoiceType      = "invoiceType"
	FieldEnhancedWarranty = "enhancedWarranty"
	FieldWarrantyInHouse  = "warrantyInHouse"
	FieldWarrantyLevel    = "warrantyLevel"
)

// Snapshot is a point-in-time view of current form values, keyed by field
// name. Condition evaluation reads it and never mutates it.
type Snapshot map[string]interface{}

// String returns the string value of a field, or "" when absent or not a
// string.
func (s Snapshot) String(field string) string {
	if v, ok := s[field].(string); ok {
		return v
	}
	return ""
}

// Bool returns the boolean value of a field, or false when absent or not a
// boolean.
func (s Snapshot) Bool(field string) bool {
	if v, ok := s[field].(bool); ok {
		return v
	}
	return false
}

// SnapshotFromInvoice projects the condition-relevant attributes of an
// invoice into a form snapshot, so document gating and the editor share one
// evaluation path.
func SnapshotFromInvoice(rec InvoiceRecord) Snapshot {
	return Snapshot{
		FieldSaleType:         string(rec.SaleType),
		FieldRecipientType:    string(rec.RecipientType),
		FieldEnhancedWarranty: rec.Warranty.Enhanced,
		FieldWarrantyInHouse:  rec.Warranty.InHouse,
		FieldWarrantyLevel:    string(rec.Warranty.Level),
	}
}
