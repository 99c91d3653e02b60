package house_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/homestay/homestay/internal/auth"
	"github.com/homestay/homestay/internal/house"
	househttp "github.com/homestay/homestay/internal/http/house"
	"github.com/homestay/homestay/internal/importer"
)

func newRouter(repo house.Repository) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/houses", househttp.NewHandler(house.NewService(repo), importer.NewService()).Routes)

	return r
}

func asAdmin(req *http.Request) *http.Request {
	return req.WithContext(auth.WithClaims(req.Context(), &auth.Claims{Role: "admin"}))
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

type bulkResponse struct {
	Message string           `json:"message"`
	Created int              `json:"created"`
	Errors  []house.RowError `json:"errors"`
}

func TestHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := house.NewMockRepository(ctrl)
	repo.EXPECT().ListHouses(gomock.Any()).Return([]*house.House{
		{ID: uuid.New(), Name: "Sea View", Price: 120, Status: house.StatusVacant},
	}, nil)

	rec := serve(newRouter(repo), httptest.NewRequest(http.MethodGet, "/api/houses", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Sea View", resp[0]["name"])
	assert.Equal(t, "vacant", resp[0]["status"])
}

func TestHandler_CreateRequiresAdmin(t *testing.T) {
	body := `{"name":"Sea View","type":"Villa","price":120}`

	t.Run("Anonymous", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		req := httptest.NewRequest(http.MethodPost, "/api/houses", strings.NewReader(body))
		rec := serve(newRouter(house.NewMockRepository(ctrl)), req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Guest", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		req := httptest.NewRequest(http.MethodPost, "/api/houses", strings.NewReader(body))
		req = req.WithContext(auth.WithClaims(req.Context(), &auth.Claims{Role: "user"}))
		rec := serve(newRouter(house.NewMockRepository(ctrl)), req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Admin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := house.NewMockRepository(ctrl)
		repo.EXPECT().CreateHouses(gomock.Any(), gomock.Len(1)).Return(nil)

		req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/houses", strings.NewReader(body)))
		rec := serve(newRouter(repo), req)

		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})

	t.Run("AdminMissingName", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/houses", strings.NewReader(`{"type":"Villa","price":120}`)))
		rec := serve(newRouter(house.NewMockRepository(ctrl)), req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_BulkUpload(t *testing.T) {
	t.Run("JSONPartiallyValid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := house.NewMockRepository(ctrl)
		repo.EXPECT().CreateHouses(gomock.Any(), gomock.Len(1)).Return(nil)

		body := `{"houses":[{"name":"Sea View","type":"Villa","price":120},{"name":"No Price","type":"House"}]}`
		req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/houses/bulk-upload", strings.NewReader(body)))
		req.Header.Set("Content-Type", "application/json")

		rec := serve(newRouter(repo), req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp bulkResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Created)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, 2, resp.Errors[0].Row)
	})

	t.Run("NothingValid", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		body := `[{"name":"","type":"House","price":10}]`
		req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/houses/bulk-upload", strings.NewReader(body)))

		rec := serve(newRouter(house.NewMockRepository(ctrl)), req)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp bulkResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Errors, 1)
	})

	t.Run("MultipartCSV", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := house.NewMockRepository(ctrl)
		repo.EXPECT().CreateHouses(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, houses []*house.House) error {
				require.Len(t, houses, 2)
				assert.Equal(t, "Garden Loft", houses[1].Name)
				assert.Equal(t, int64(95), houses[1].Price)
				return nil
			})

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", "houses.csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte("name,type,price,status\nSea View,Villa,120,vacant\nGarden Loft,Apartment,95,occupied\n"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/houses/bulk-upload", &buf))
		req.Header.Set("Content-Type", mw.FormDataContentType())

		rec := serve(newRouter(repo), req)

		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})

	t.Run("MultipartWithoutFile", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("note", "empty"))
		require.NoError(t, mw.Close())

		req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/houses/bulk-upload", &buf))
		req.Header.Set("Content-Type", mw.FormDataContentType())

		rec := serve(newRouter(house.NewMockRepository(ctrl)), req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_DeleteMultiple(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	ctrl := gomock.NewController(t)
	repo := house.NewMockRepository(ctrl)
	repo.EXPECT().DeleteHouses(gomock.Any(), ids).Return(int64(2), nil)

	body := `{"ids":["` + ids[0].String() + `","` + ids[1].String() + `"]}`
	req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/houses/delete-multiple", strings.NewReader(body)))

	rec := serve(newRouter(repo), req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		DeletedCount int64 `json:"deletedCount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.DeletedCount)
}

func TestHandler_GetNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := house.NewMockRepository(ctrl)

	id := uuid.New()
	repo.EXPECT().GetHouse(gomock.Any(), id).Return(nil, house.ErrNotFound)

	rec := serve(newRouter(repo), httptest.NewRequest(http.MethodGet, "/api/houses/"+id.String(), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
