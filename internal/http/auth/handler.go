package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/homestay/homestay/internal/auth"
	"github.com/homestay/homestay/internal/http/middleware"
	"github.com/homestay/homestay/internal/http/respond"
	"github.com/homestay/homestay/internal/user"
)

type Handler struct {
	users  *user.Service
	issuer *auth.Issuer
}

func NewHandler(users *user.Service, issuer *auth.Issuer) *Handler {
	return &Handler{users: users, issuer: issuer}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/admin-login", h.adminLogin)
	r.With(middleware.RequireAuth).Get("/me", h.me)
}

type userResponse struct {
	ID       uuid.UUID `json:"_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     user.Role `json:"role"`
}

type sessionResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, user.ErrInvalidInput):
		respond.Invalid(w, err)
	case errors.Is(err, user.ErrAlreadyExists):
		respond.Message(w, http.StatusBadRequest, "email or username already exists")
	case errors.Is(err, user.ErrInvalidCredentials):
		respond.Message(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, user.ErrNotFound):
		respond.Message(w, http.StatusNotFound, "user not found")
	default:
		respond.Internal(w, r, err)
	}
}

// session issues a token for u and writes it with the public user fields.
func (h *Handler) session(w http.ResponseWriter, r *http.Request, status int, msg string, u *user.User) {
	token, err := h.issuer.Issue(u.ID, string(u.Role), u.Email)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	respond.JSON(w, status, sessionResponse{
		Message: msg,
		Token:   token,
		User: userResponse{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
			Role:     u.Role,
		},
	})
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Invalid(w, err)
		return
	}

	u, err := h.users.Register(r.Context(), user.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.session(w, r, http.StatusCreated, "Registration successful.", u)
}

type loginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Invalid(w, err)
		return
	}

	u, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.session(w, r, http.StatusOK, "Login successful.", u)
}

func (h *Handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Invalid(w, err)
		return
	}

	u, err := h.users.AdminLogin(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.session(w, r, http.StatusOK, "Admin login successful.", u)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFrom(r.Context())

	id, err := claims.UserID()
	if err != nil {
		respond.Message(w, http.StatusUnauthorized, "invalid token subject")
		return
	}

	u, err := h.users.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, userResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	})
}
