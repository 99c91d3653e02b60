package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homestay/homestay/internal/house"
)

var houseColumns = []string{
	"id", "type", "name", "description", "image", "image_lg", "country", "address", "bedrooms",
	"bathrooms", "surface", "year", "price", "status", "agent_image", "agent_name", "agent_phone",
	"owner_id", "created_at", "updated_at",
}

func TestStore_GetHouse(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM houses WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(houseColumns).AddRow(
			id.String(), "House", "House 1", "", "", "", "United States", "7240C Argyle St.", "6", "3",
			"4200 sq ft", "2016", int64(110000), "vacant", "", "Patricia Tullert", "0123 456 7890",
			nil, now, now,
		))

	h, err := New(db).GetHouse(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "House 1", h.Name)
	assert.Equal(t, house.StatusVacant, h.Status)
	assert.Equal(t, "Patricia Tullert", h.Agent.Name)
	assert.Nil(t, h.OwnerID)
}

func TestStore_CreateHouses_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO houses"))
	prep.ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(uuid.NewString(), now, now))
	prep.ExpectQuery().WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err = New(db).CreateHouses(context.Background(), []*house.House{
		{Name: "A", Type: "House", Price: 1, Status: house.StatusVacant},
		{Name: "B", Type: "House", Price: 1, Status: house.StatusVacant},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"B"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteHouses(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	a, b := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM houses WHERE id IN ($1, $2)")).
		WithArgs(a, b).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := New(db).DeleteHouses(context.Background(), []uuid.UUID{a, b})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestStore_CountHouses(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WillReturnRows(sqlmock.NewRows([]string{"total", "vacant"}).AddRow(5, 3))

	total, vacant, err := New(db).CountHouses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Equal(t, 3, vacant)
}
