package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/go-trip-booking/internal/application/auth"
	"github.com/go-trip-booking/internal/domain"
	"github.com/go-trip-booking/internal/pkg/validate"
	"github.com/go-trip-booking/internal/transport/http/middleware"
)

// UserHandler exposes account lifecycle endpoints.
type UserHandler struct {
	svc auth.Service
}

func NewUserHandler(svc auth.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	user, err := h.svc.Register(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newUserDTO(user))
}

// Deactivate disables an account. Users may deactivate themselves; anyone
// else's account requires the admin role.
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	targetID := chi.URLParam(r, "id")
	if targetID != caller.ID().String() && caller.Role() != domain.RoleAdmin {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	if err := h.svc.DeactivateAccount(r.Context(), targetID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "account deactivated"})
}

// Activate re-enables an account. Admin only; the route guard enforces it.
func (h *UserHandler) Activate(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ActivateAccount(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "account activated"})
}
