package http

import (
	"net/http"

	"bizdesk-backend/internal/metrics"

	"github.com/gorilla/mux"
)

// NewRouter wires all admin routes behind the auth middleware. /healthz and
// /metrics stay outside it.
func NewRouter(
	auth *AuthMiddleware,
	tenants *TenantHandler,
	audit *AuditHandler,
	orders *SalesOrderHandler,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1/admin").Subrouter()
	api.Use(auth.Handler)

	api.HandleFunc("/tenants", tenants.Register).Methods(http.MethodPost)
	api.HandleFunc("/tenants", tenants.List).Methods(http.MethodGet)
	api.HandleFunc("/tenants/{id}", tenants.Get).Methods(http.MethodGet)
	api.HandleFunc("/tenants/{id}", tenants.UpdateProfile).Methods(http.MethodPut)
	api.HandleFunc("/tenants/{id}", tenants.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/tenants/{id}/approve", tenants.Approve).Methods(http.MethodPost)
	api.HandleFunc("/tenants/{id}/reject", tenants.Reject).Methods(http.MethodPost)
	api.HandleFunc("/tenants/{id}/block", tenants.Block).Methods(http.MethodPost)
	api.HandleFunc("/tenants/{id}/suspend", tenants.Suspend).Methods(http.MethodPost)
	api.HandleFunc("/tenants/{id}/ban", tenants.Ban).Methods(http.MethodPost)
	api.HandleFunc("/tenants/{id}/reactivate", tenants.Reactivate).Methods(http.MethodPost)
	api.HandleFunc("/tenants/{id}/deactivate", tenants.Deactivate).Methods(http.MethodPost)

	api.HandleFunc("/tenants/{id}/users", tenants.CreateUser).Methods(http.MethodPost)
	api.HandleFunc("/tenants/{id}/users", tenants.ListUsers).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", tenants.DeleteUser).Methods(http.MethodDelete)

	api.HandleFunc("/audit-logs", audit.Query).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}/history", audit.DocumentHistory).Methods(http.MethodGet)

	api.HandleFunc("/sales-orders", orders.Create).Methods(http.MethodPost)
	api.HandleFunc("/sales-orders/{id}", orders.Get).Methods(http.MethodGet)
	api.HandleFunc("/sales-orders/{id}", orders.Update).Methods(http.MethodPut)

	return r
}
