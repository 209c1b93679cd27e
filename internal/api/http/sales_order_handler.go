package http

import (
	"encoding/json"
	"net/http"

	"bizdesk-backend/internal/domain"
	"bizdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

type SalesOrderHandler struct {
	orders service.SalesOrderService
}

func NewSalesOrderHandler(orders service.SalesOrderService) *SalesOrderHandler {
	return &SalesOrderHandler{orders: orders}
}

func (h *SalesOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	var o domain.SalesOrder
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.orders.Create(r.Context(), actor, &o); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *SalesOrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *SalesOrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	var o domain.SalesOrder
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	o.ID = mux.Vars(r)["id"]
	updated, changes, err := h.orders.Update(r.Context(), actor, &o)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"order":   updated,
		"changes": changes,
	})
}
