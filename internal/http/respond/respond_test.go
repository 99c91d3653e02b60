package respond_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/homestay/homestay/internal/http/respond"
	"github.com/homestay/homestay/internal/validate"
)

func TestInvalid(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "Plain",
			err:  errors.New("startDate is required"),
			want: `{"message":"startDate is required"}`,
		},
		{
			name: "FieldErrors",
			err: validate.Errors{
				{Field: "email", Message: "must be a valid email"},
				{Field: "password", Message: "must be at least 3 characters"},
			},
			want: `{"message":"email must be a valid email","errors":[` +
				`{"field":"email","message":"must be a valid email"},` +
				`{"field":"password","message":"must be at least 3 characters"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respond.Invalid(rec, tt.err)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

func TestInternal_HidesError(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.Internal(rec, httptest.NewRequest(http.MethodGet, "/api/bookings", nil), errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"internal server error"}`, rec.Body.String())
}
