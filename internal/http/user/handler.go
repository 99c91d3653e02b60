package user

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/homestay/homestay/internal/http/middleware"
	"github.com/homestay/homestay/internal/http/respond"
	"github.com/homestay/homestay/internal/user"
)

type Handler struct {
	svc *user.Service
}

func NewHandler(svc *user.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Use(middleware.RequireAuth)

	r.With(middleware.RequireRole(middleware.RoleAdmin)).Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Put("/{id}/change-password", h.changePassword)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, user.ErrInvalidInput):
		respond.Invalid(w, err)
	case errors.Is(err, user.ErrAlreadyExists):
		respond.Message(w, http.StatusBadRequest, "email or username already exists")
	case errors.Is(err, user.ErrInvalidCredentials):
		respond.Message(w, http.StatusBadRequest, "current password is incorrect")
	case errors.Is(err, user.ErrNotFound):
		respond.Message(w, http.StatusNotFound, "user not found")
	default:
		respond.Internal(w, r, err)
	}
}

// target parses the {id} parameter and checks the caller may act on it.
func target(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}

	if !middleware.IsSelfOrAdmin(r, id) {
		respond.Message(w, http.StatusForbidden, "insufficient permissions")
		return uuid.Nil, false
	}

	return id, true
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(users))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := target(w, r)
	if !ok {
		return
	}

	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(u))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := target(w, r)
	if !ok {
		return
	}

	var params user.UpdateParams
	if err := respond.Decode(r, &params); err != nil {
		respond.Invalid(w, err)
		return
	}

	if params.Role != nil && !middleware.IsAdmin(r) {
		respond.Message(w, http.StatusForbidden, "only admins can change roles")
		return
	}

	u, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, struct {
		Message string       `json:"message"`
		User    userResponse `json:"user"`
	}{
		Message: "Profile updated.",
		User:    toResponse(u),
	})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := target(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	respond.Message(w, http.StatusOK, "User deleted.")
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := target(w, r)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Invalid(w, err)
		return
	}

	if err := h.svc.ChangePassword(r.Context(), id, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	respond.Message(w, http.StatusOK, "Password changed.")
}
