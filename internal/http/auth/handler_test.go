package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/homestay/homestay/internal/auth"
	authhttp "github.com/homestay/homestay/internal/http/auth"
	"github.com/homestay/homestay/internal/http/middleware"
	"github.com/homestay/homestay/internal/user"
)

func newRouter(repo user.Repository, issuer *auth.Issuer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NewAuthenticator(issuer).Authenticate)
	r.Route("/api/auth", authhttp.NewHandler(user.NewService(repo), issuer).Routes)

	return r
}

type session struct {
	Token string `json:"token"`
	User  struct {
		ID       uuid.UUID `json:"_id"`
		Username string    `json:"username"`
		Role     string    `json:"role"`
	} `json:"user"`
}

func post(h http.Handler, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))

	return rec
}

func TestHandler_Register(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)

	t.Run("CreatesGuest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := user.NewMockRepository(ctrl)

		id := uuid.New()
		repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, u *user.User) error {
			assert.Equal(t, user.RoleUser, u.Role)
			assert.NotEqual(t, "secret", u.PasswordHash)
			u.ID = id
			return nil
		})

		rec := post(newRouter(repo, issuer), "/api/auth/register",
			`{"username":"alice","email":"Alice@Example.com","password":"secret","role":"admin"}`)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp session
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "user", resp.User.Role)

		claims, err := issuer.Parse(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, id.String(), claims.Subject)
	})

	t.Run("Duplicate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(user.ErrAlreadyExists)

		rec := post(newRouter(repo, issuer), "/api/auth/register",
			`{"username":"alice","email":"alice@example.com","password":"secret"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ShortUsername", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		rec := post(newRouter(user.NewMockRepository(ctrl), issuer), "/api/auth/register",
			`{"username":"al","email":"alice@example.com","password":"secret"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Login(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)

	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)

	id := uuid.New()
	stored := &user.User{ID: id, Username: "admin", Email: "admin@example.com", PasswordHash: hash, Role: user.RoleAdmin}

	t.Run("WrongPassword", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().GetUserByEmail(gomock.Any(), "admin@example.com").Return(stored, nil)

		rec := post(newRouter(repo, issuer), "/api/auth/login", `{"email":"admin@example.com","password":"nope"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("AdminLoginThenMe", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().GetAdminByUsername(gomock.Any(), "admin").Return(stored, nil)
		repo.EXPECT().GetUser(gomock.Any(), id).Return(stored, nil)

		router := newRouter(repo, issuer)

		rec := post(router, "/api/auth/admin-login", `{"username":"admin","password":"secret"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp session
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "admin", resp.User.Role)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+resp.Token)

		me := httptest.NewRecorder()
		router.ServeHTTP(me, req)

		assert.Equal(t, http.StatusOK, me.Code, me.Body.String())
	})

	t.Run("MeAnonymous", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		rec := httptest.NewRecorder()
		newRouter(user.NewMockRepository(ctrl), issuer).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
