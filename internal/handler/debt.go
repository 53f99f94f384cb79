package handler

import (
	"encoding/json"
	"net/http"

	"github.com/agrovista/agrodash/internal/models"
)

// DebtPosition returns the aggregate portfolio view. ?include_history=true
// attaches the full contract list, settled contracts included.
func (h *Handler) DebtPosition(w http.ResponseWriter, r *http.Request) {
	includeHistory := r.URL.Query().Get("include_history") == "true"

	position, err := h.svc.DebtPosition(includeHistory)
	if err != nil {
		h.log.Errorf("Failed to assemble debt position: %v", err)
		h.respondError(w, http.StatusInternalServerError, "failed to load debt position")
		return
	}
	h.respondJSON(w, http.StatusOK, position)
}

// Covenants returns every covenant's evaluated status plus the overall
// classification.
func (h *Handler) Covenants(w http.ResponseWriter, r *http.Request) {
	covenants, overall, err := h.svc.CovenantReport()
	if err != nil {
		h.log.Errorf("Failed to evaluate covenants: %v", err)
		h.respondError(w, http.StatusInternalServerError, "failed to evaluate covenants")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"overall_status": overall,
		"covenants":      covenants,
	})
}

// Scenario runs a stress projection under the posted macro assumptions
func (h *Handler) Scenario(w http.ResponseWriter, r *http.Request) {
	var assumptions models.ScenarioAssumptions
	if err := json.NewDecoder(r.Body).Decode(&assumptions); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(assumptions); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.RunScenario(assumptions)
	if err != nil {
		h.log.Errorf("Scenario run failed: %v", err)
		h.respondError(w, http.StatusInternalServerError, "scenario projection failed")
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// Rates exposes the conversion table currently in use and its source
func (h *Handler) Rates(w http.ResponseWriter, r *http.Request) {
	rates, source := h.svc.Rates()
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"base":   "USD",
		"source": source,
		"rates":  rates,
	})
}
