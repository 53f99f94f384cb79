package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/agrovista/agrodash/internal/export"
	"github.com/agrovista/agrodash/internal/models"
	"github.com/agrovista/agrodash/internal/service"
)

// CashFlowReport generates the grouped cash-flow view for a date range
func (h *Handler) CashFlowReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := models.CashFlowReportRequest{
		From:        q.Get("from"),
		To:          q.Get("to"),
		GroupBy:     q.Get("group_by"),
		Currency:    q.Get("currency"),
		Institution: q.Get("institution"),
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	overview, err := h.svc.CashFlowReport(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRange) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Errorf("Cash-flow report failed: %v", err)
		h.respondError(w, http.StatusInternalServerError, "failed to generate cash-flow report")
		return
	}
	h.respondJSON(w, http.StatusOK, overview)
}

// ImportPayments ingests a semicolon-delimited schedule export posted as the
// request body. ?backfill=true synthesizes the installments preceding each
// record.
func (h *Handler) ImportPayments(w http.ResponseWriter, r *http.Request) {
	backfill := r.URL.Query().Get("backfill") == "true"

	summary, err := h.svc.ImportPayments(r.Body, backfill)
	if err != nil {
		h.log.Errorf("Payment import failed: %v", err)
		if summary != nil && summary.Written > 0 {
			// earlier chunks stay committed; report the partial outcome
			h.respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"error":   "import failed after partial write",
				"summary": summary,
			})
			return
		}
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, summary)
}

type exportRequest struct {
	ReportType string          `json:"report_type" validate:"required"`
	Format     string          `json:"format" validate:"required,oneof=csv json xml excel pdf"`
	Payload    json.RawMessage `json:"payload" validate:"required"`
}

// Export renders a report payload into a downloadable document
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, contentType, err := export.Generate(req.ReportType, req.Format, req.Payload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s.%s", req.ReportType, req.Format))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.log.Errorf("Failed to write export: %v", err)
	}
}
