package http

import (
	"net/http"
	"time"

	"bizdesk-backend/internal/domain"
	"bizdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

// AuditHandler exposes read-only access to the audit and edit-history
// ledgers. There are intentionally no write endpoints here.
type AuditHandler struct {
	audit   service.AuditService
	history service.EditHistoryService
}

func NewAuditHandler(audit service.AuditService, history service.EditHistoryService) *AuditHandler {
	return &AuditHandler{audit: audit, history: history}
}

func (h *AuditHandler) Query(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.AuditLogFilter{
		Action: domain.AuditAction(q.Get("action")),
		Search: q.Get("q"),
	}
	if from := q.Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid 'from' timestamp")
			return
		}
		filter.From = t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid 'to' timestamp")
			return
		}
		filter.To = t
	}

	entries, err := h.audit.Query(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *AuditHandler) DocumentHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.history.History(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
