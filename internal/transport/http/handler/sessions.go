package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-trip-booking/internal/application/auth"
	"github.com/go-trip-booking/internal/pkg/validate"
	"github.com/go-trip-booking/internal/transport/http/middleware"
)

// SessionHandler exposes login, logout and the current-identity endpoint.
type SessionHandler struct {
	svc auth.Service
}

func NewSessionHandler(svc auth.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	user, sess, bearer, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	dto := newUserDTO(user)
	writeJSON(w, http.StatusOK, AuthEnvelope{
		Bearer:  bearer,
		User:    &dto,
		Expires: sess.ExpiresAt.Format(time.RFC3339),
	})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerFromHeader(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	if err := h.svc.Logout(r.Context(), token); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "logged out"})
}

// Me returns the identity resolved by the auth middleware.
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, newUserDTO(user))
}

func bearerFromHeader(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	return token, token != ""
}
