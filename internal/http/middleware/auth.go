package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/homestay/homestay/internal/auth"
	"github.com/homestay/homestay/internal/http/respond"
)

const RoleAdmin = "admin"

// Authenticator reads an optional bearer token. Requests without one pass
// through anonymously; requests with a bad one are rejected.
type Authenticator struct {
	issuer *auth.Issuer
}

func NewAuthenticator(issuer *auth.Issuer) *Authenticator {
	return &Authenticator{issuer: issuer}
}

func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respond.Message(w, http.StatusUnauthorized, "malformed authorization header")
			return
		}

		claims, err := a.issuer.Parse(token)
		if err != nil {
			respond.Message(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
	})
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.ClaimsFrom(r.Context()); !ok {
			respond.Message(w, http.StatusUnauthorized, "authentication required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := auth.ClaimsFrom(r.Context())
			if !ok {
				respond.Message(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if claims.Role != role {
				respond.Message(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// IsAdmin reports whether the request carries admin claims.
func IsAdmin(r *http.Request) bool {
	claims, ok := auth.ClaimsFrom(r.Context())
	return ok && claims.Role == RoleAdmin
}

// IsSelfOrAdmin reports whether the caller is the user id or an admin.
func IsSelfOrAdmin(r *http.Request, id uuid.UUID) bool {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		return false
	}

	if claims.Role == RoleAdmin {
		return true
	}

	sub, err := claims.UserID()

	return err == nil && sub == id
}
