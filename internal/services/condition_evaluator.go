package services

import (
	"sort"

	"github.com/kestrelmotors/dealerdesk-api/internal/constants"
	"github.com/kestrelmotors/dealerdesk-api/internal/types/business"
	"github.com/pkg/errors"
)

// Condition ids known to the evaluator. The set is closed: the interactive
// editor and the document composer both gate against this table, never
// against ad-hoc expressions.
const (
	ConditionWarrantyDetails         = "warrantyDetails"
	ConditionEnhancedWarrantyDetails = "enhancedWarrantyDetails"
	ConditionFinanceCompanyDetails   = "financeCompanyDetails"
	ConditionDeliverToBlock          = "deliverToBlock"
	ConditionPurchaseFromBlock       = "purchaseFromBlock"

	ConditionPageStandardTerms         = "page.standardTerms"
	ConditionPageInHouseWarrantyTerms  = "page.inHouseWarrantyTerms"
	ConditionPageExternalWarrantyTerms = "page.externalWarrantyTerms"
)

// ErrUnknownCondition marks a schema/template mismatch: an id nothing in the
// registry knows about. This is a programmer error, distinct from an
// incomplete business record, and fails loudly.
var ErrUnknownCondition = errors.New("unknown condition id")

// Predicate decides a condition against a form snapshot. Predicates are pure;
// identical snapshots always yield identical verdicts.
type Predicate func(business.Snapshot) bool

// Condition is a declarative visibility rule. DependsOn lists every field the
// predicate reads, which lets callers skip re-evaluation when an unrelated
// field changes.
type Condition struct {
	ID        string
	DependsOn []string
	predicate Predicate
}

// ConditionEvaluator answers visibility questions for named fields and
// document sections from a snapshot of current form values. It holds no
// mutable state after construction and is safe for concurrent use.
type ConditionEvaluator struct {
	conditions map[string]Condition
	byField    map[string][]string
}

// NewConditionEvaluator builds the evaluator over the closed condition set
// used by this domain.
func NewConditionEvaluator() *ConditionEvaluator {
	e := &ConditionEvaluator{
		conditions: make(map[string]Condition),
		byField:    make(map[string][]string),
	}

	notTrade := func(s business.Snapshot) bool {
		return s.String(business.FieldSaleType) != string(business.SaleTypeTrade)
	}

	e.register(Condition{
		ID:        ConditionWarrantyDetails,
		DependsOn: []string{business.FieldSaleType},
		predicate: notTrade,
	})
	e.register(Condition{
		ID:        ConditionEnhancedWarrantyDetails,
		DependsOn: []string{business.FieldSaleType, business.FieldEnhancedWarranty},
		predicate: func(s business.Snapshot) bool {
			return notTrade(s) && s.Bool(business.FieldEnhancedWarranty)
		},
	})
	e.register(Condition{
		ID:        ConditionFinanceCompanyDetails,
		DependsOn: []string{business.FieldSaleType, business.FieldRecipientType},
		predicate: func(s business.Snapshot) bool {
			return notTrade(s) &&
				s.String(business.FieldRecipientType) == string(business.RecipientFinanceCompany)
		},
	})
	e.register(Condition{
		ID:        ConditionDeliverToBlock,
		DependsOn: []string{business.FieldInvoiceType},
		predicate: func(s business.Snapshot) bool {
			return s.String(business.FieldInvoiceType) == constants.InvoiceTypePurchase
		},
	})
	e.register(Condition{
		ID:        ConditionPurchaseFromBlock,
		DependsOn: []string{business.FieldInvoiceType},
		predicate: func(s business.Snapshot) bool {
			return s.String(business.FieldInvoiceType) == constants.InvoiceTypePurchase
		},
	})

	e.register(Condition{
		ID:        ConditionPageStandardTerms,
		DependsOn: []string{business.FieldSaleType},
		predicate: notTrade,
	})
	e.register(Condition{
		ID:        ConditionPageInHouseWarrantyTerms,
		DependsOn: []string{business.FieldRecipientType, business.FieldWarrantyInHouse},
		predicate: func(s business.Snapshot) bool {
			return s.String(business.FieldRecipientType) == string(business.RecipientCustomer) &&
				s.Bool(business.FieldWarrantyInHouse)
		},
	})
	e.register(Condition{
		ID:        ConditionPageExternalWarrantyTerms,
		DependsOn: []string{business.FieldWarrantyInHouse, business.FieldWarrantyLevel},
		predicate: func(s business.Snapshot) bool {
			level := s.String(business.FieldWarrantyLevel)
			return !s.Bool(business.FieldWarrantyInHouse) &&
				level != "" && level != string(business.WarrantyLevelNone)
		},
	})

	return e
}

func (e *ConditionEvaluator) register(c Condition) {
	e.conditions[c.ID] = c
	for _, field := range c.DependsOn {
		e.byField[field] = append(e.byField[field], c.ID)
	}
}

// EvaluateVisibility returns whether the named field or section is visible
// for the given snapshot. Unknown ids are reported as errors, never silently
// hidden.
func (e *ConditionEvaluator) EvaluateVisibility(conditionID string, snapshot business.Snapshot) (bool, error) {
	condition, ok := e.conditions[conditionID]
	if !ok {
		return false, errors.Wrap(ErrUnknownCondition, conditionID)
	}
	return condition.predicate(snapshot), nil
}

// AffectedConditions lists the condition ids that declare the given field as
// a dependency. A keystroke on any other field cannot change these verdicts,
// so callers re-evaluate only what this returns.
func (e *ConditionEvaluator) AffectedConditions(field string) []string {
	ids := append([]string(nil), e.byField[field]...)
	sort.Strings(ids)
	return ids
}

// DependsOn reports the declared dependencies of a condition.
func (e *ConditionEvaluator) DependsOn(conditionID string) ([]string, error) {
	condition, ok := e.conditions[conditionID]
	if !ok {
		return nil, errors.Wrap(ErrUnknownCondition, conditionID)
	}
	return append([]string(nil), condition.DependsOn...), nil
}

// ConditionIDs lists every registered condition id in sorted order.
func (e *ConditionEvaluator) ConditionIDs() []string {
	ids := make([]string, 0, len(e.conditions))
	for id := range e.conditions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
