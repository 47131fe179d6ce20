package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kestrelmotors/dealerdesk-api/internal/services"
	"github.com/kestrelmotors/dealerdesk-api/internal/types/business"
)

// ConditionHandler exposes field/section visibility evaluation to the
// interactive editor.
type ConditionHandler struct {
	evaluator *services.ConditionEvaluator
}

// NewConditionHandler creates a new condition handler
func NewConditionHandler(evaluator *services.ConditionEvaluator) *ConditionHandler {
	return &ConditionHandler{evaluator: evaluator}
}

// EvaluateRequest asks for visibility verdicts against a form snapshot. When
// ChangedField is set, only conditions depending on it are evaluated, which
// is what keeps per-keystroke recomputation cheap.
type EvaluateRequest struct {
	ConditionIDs []string          `json:"condition_ids"`
	ChangedField string            `json:"changed_field,omitempty"`
	Snapshot     business.Snapshot `json:"snapshot"`
}

// EvaluateResponse maps condition id to visibility verdict.
type EvaluateResponse struct {
	Results map[string]bool `json:"results"`
}

// Evaluate handles POST /api/v1/conditions/evaluate
func (h *ConditionHandler) Evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid evaluation request", err)
		return
	}

	ids := req.ConditionIDs
	if len(ids) == 0 {
		if req.ChangedField != "" {
			ids = h.evaluator.AffectedConditions(req.ChangedField)
		} else {
			ids = h.evaluator.ConditionIDs()
		}
	}

	results := make(map[string]bool, len(ids))
	for _, id := range ids {
		visible, err := h.evaluator.EvaluateVisibility(id, req.Snapshot)
		if err != nil {
			handleConditionError(c, err)
			return
		}
		results[id] = visible
	}

	sendSuccess(c, http.StatusOK, EvaluateResponse{Results: results})
}

// ListConditions handles GET /api/v1/conditions
func (h *ConditionHandler) ListConditions(c *gin.Context) {
	ids := h.evaluator.ConditionIDs()
	conditions := make([]gin.H, 0, len(ids))
	for _, id := range ids {
		deps, err := h.evaluator.DependsOn(id)
		if err != nil {
			handleConditionError(c, err)
			return
		}
		conditions = append(conditions, gin.H{"id": id, "depends_on": deps})
	}
	sendSuccess(c, http.StatusOK, gin.H{"object": "list", "data": conditions})
}
