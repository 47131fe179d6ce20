package services

import "github.com/kestrelmotors/dealerdesk-api/internal/types/business"

// StaticTerms is a TermsProvider backed by fixed text blocks, used until the
// dealer-profile editor supplies custom ones. The blocks are opaque HTML-ish
// strings; the composer passes them through unmodified.
type StaticTerms struct {
	Standard       string
	InHouse        string
	External       map[business.WarrantyLevel]string
	Checklist      string
	TradeStatement string
}

// NewStaticTerms returns a provider with the dealership's stock terms text.
func NewStaticTerms() *StaticTerms {
	return &StaticTerms{
		Standard: "<h2>Terms &amp; Conditions of Sale</h2><p>This vehicle is sold subject to the " +
			"Consumer Rights Act 2015. Any fault present at the point of sale must be reported " +
			"within 30 days.</p>",
		InHouse: "<h2>Engine &amp; Transmission Warranty</h2><p>The dealership warrants the engine " +
			"and transmission of the vehicle for the period stated overleaf, parts and labour " +
			"at the dealership's premises only.</p>",
		External: map[business.WarrantyLevel]string{
			business.WarrantyLevelStandard: "<h2>Warranty Terms</h2><p>Cover is provided by the " +
				"warranty administrator named on your schedule under its standard plan.</p>",
			business.WarrantyLevelEnhanced: "<h2>Warranty Terms</h2><p>Cover is provided by the " +
				"warranty administrator named on your schedule under its enhanced plan.</p>",
		},
		Checklist: "<h2>Vehicle Handover Checklist</h2><p>Service history, spare key, locking " +
			"wheel nut and V5C confirmed present at handover.</p>",
		TradeStatement: "<h2>Trade Sale</h2><p>Sold as seen. This is a trade sale between " +
			"motor traders; no warranty is given or implied and statutory consumer rights " +
			"do not apply.</p>",
	}
}

func (t *StaticTerms) StandardTerms() string        { return t.Standard }
func (t *StaticTerms) InHouseWarrantyTerms() string { return t.InHouse }
func (t *StaticTerms) RetailChecklist() string      { return t.Checklist }
func (t *StaticTerms) TradeDisclaimer() string      { return t.TradeStatement }

func (t *StaticTerms) ExternalWarrantyTerms(level business.WarrantyLevel) string {
	if text, ok := t.External[level]; ok {
		return text
	}
	return t.External[business.WarrantyLevelStandard]
}
