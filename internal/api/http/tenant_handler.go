package http

import (
	"encoding/json"
	"net/http"

	"bizdesk-backend/internal/domain"
	"bizdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

// TenantHandler exposes tenant lifecycle and destructive operations.
type TenantHandler struct {
	lifecycle service.TenantLifecycleService
	tenants   service.TenantService
	cascade   service.CascadeDeletionService
	users     service.UserService
}

func NewTenantHandler(
	lifecycle service.TenantLifecycleService,
	tenants service.TenantService,
	cascade service.CascadeDeletionService,
	users service.UserService,
) *TenantHandler {
	return &TenantHandler{lifecycle: lifecycle, tenants: tenants, cascade: cascade, users: users}
}

type transitionRequest struct {
	Reason       string `json:"reason"`
	Note         string `json:"note"`
	DurationDays int    `json:"duration_days"`
	OverrideBan  bool   `json:"override_ban"`
}

func (req *transitionRequest) text() string {
	if req.Reason != "" {
		return req.Reason
	}
	return req.Note
}

type deleteRequest struct {
	Confirmation string `json:"confirmation"`
	Reason       string `json:"reason"`
}

type createUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *TenantHandler) Register(w http.ResponseWriter, r *http.Request) {
	var t domain.Tenant
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.tenants.Register(r.Context(), &t); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *TenantHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.tenants.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TenantHandler) List(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.tenants.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tenants)
}

func (h *TenantHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	var t domain.Tenant
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t.ID = mux.Vars(r)["id"]
	if err := h.tenants.UpdateProfile(r.Context(), actor, &t); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TenantHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(req *transitionRequest, actor domain.Actor, id string) (*domain.Tenant, error) {
		return h.lifecycle.Approve(r.Context(), actor, id, req.text())
	})
}

func (h *TenantHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(req *transitionRequest, actor domain.Actor, id string) (*domain.Tenant, error) {
		return h.lifecycle.Reject(r.Context(), actor, id, req.Reason)
	})
}

func (h *TenantHandler) Block(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(req *transitionRequest, actor domain.Actor, id string) (*domain.Tenant, error) {
		return h.lifecycle.Block(r.Context(), actor, id, req.Reason)
	})
}

func (h *TenantHandler) Suspend(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(req *transitionRequest, actor domain.Actor, id string) (*domain.Tenant, error) {
		return h.lifecycle.Suspend(r.Context(), actor, id, req.Reason, req.DurationDays)
	})
}

func (h *TenantHandler) Ban(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(req *transitionRequest, actor domain.Actor, id string) (*domain.Tenant, error) {
		return h.lifecycle.Ban(r.Context(), actor, id, req.Reason)
	})
}

func (h *TenantHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(req *transitionRequest, actor domain.Actor, id string) (*domain.Tenant, error) {
		return h.lifecycle.Reactivate(r.Context(), actor, id, req.text(), req.OverrideBan)
	})
}

func (h *TenantHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(req *transitionRequest, actor domain.Actor, id string) (*domain.Tenant, error) {
		return h.lifecycle.Deactivate(r.Context(), actor, id, req.Reason)
	})
}

func (h *TenantHandler) transition(w http.ResponseWriter, r *http.Request, fn func(*transitionRequest, domain.Actor, string) (*domain.Tenant, error)) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "no authenticated actor")
		return
	}
	req := &transitionRequest{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	t, err := fn(req, actor, mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TenantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	summary, err := h.cascade.DeleteTenant(r.Context(), actor, mux.Vars(r)["id"], req.Confirmation, req.Reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *TenantHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	u := &domain.User{
		TenantID: mux.Vars(r)["id"],
		Email:    req.Email,
		Name:     req.Name,
		Role:     domain.UserRole(req.Role),
	}
	created, err := h.users.CreateUser(r.Context(), actor, u, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *TenantHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListByTenant(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *TenantHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.cascade.DeleteUser(r.Context(), actor, mux.Vars(r)["id"], req.Confirmation, req.Reason); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
