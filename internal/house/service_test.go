package house_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/homestay/homestay/internal/house"
)

func validInput() house.Input {
	return house.Input{
		Type:     "House",
		Name:     "House 1",
		Country:  "United States",
		Address:  "7240C Argyle St. Lawndale, CA 90260",
		Bedrooms: "6",
		Price:    110000,
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in     string
		want   house.Status
		wantOK bool
	}{
		{"", house.StatusVacant, true},
		{"vacant", house.StatusVacant, true},
		{"Occupied", house.StatusOccupied, true},
		{"Đang thuê", house.StatusOccupied, true},
		{"Trả phòng", house.StatusVacant, true},
		{"sold", "", false},
	}

	for _, tt := range tests {
		got, ok := house.ParseStatus(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		input     func() house.Input
		setupMock func(repo *house.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:  "Success",
			input: validInput,
			setupMock: func(repo *house.MockRepository) {
				repo.EXPECT().CreateHouses(gomock.Any(), gomock.Len(1)).DoAndReturn(func(_ context.Context, hs []*house.House) error {
					assert.Equal(t, house.StatusVacant, hs[0].Status)
					hs[0].ID = uuid.New()
					return nil
				})
			},
		},
		{
			name: "MissingName",
			input: func() house.Input {
				in := validInput()
				in.Name = "   "
				return in
			},
			setupMock: func(_ *house.MockRepository) {},
			wantErr:   house.ErrInvalidInput,
		},
		{
			name: "ZeroPrice",
			input: func() house.Input {
				in := validInput()
				in.Price = 0
				return in
			},
			setupMock: func(_ *house.MockRepository) {},
			wantErr:   house.ErrInvalidInput,
		},
		{
			name: "UnknownStatus",
			input: func() house.Input {
				in := validInput()
				in.Status = "sold"
				return in
			},
			setupMock: func(_ *house.MockRepository) {},
			wantErr:   house.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := house.NewMockRepository(ctrl)
			tt.setupMock(repo)

			h, err := house.NewService(repo).Create(context.Background(), tt.input())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, h.ID)
		})
	}
}

func TestService_Update(t *testing.T) {
	id := uuid.New()

	ctrl := gomock.NewController(t)
	repo := house.NewMockRepository(ctrl)
	repo.EXPECT().GetHouse(gomock.Any(), id).Return(&house.House{ID: id, Name: "Old", Type: "House", Price: 100, Status: house.StatusVacant}, nil)
	repo.EXPECT().UpdateHouse(gomock.Any(), gomock.Any()).Return(nil)

	h, err := house.NewService(repo).Update(context.Background(), id, house.UpdateParams{
		Name:   new("New name"),
		Status: new("occupied"),
		Price:  new(int64(250)),
	})
	require.NoError(t, err)
	assert.Equal(t, "New name", h.Name)
	assert.Equal(t, "House", h.Type)
	assert.Equal(t, house.StatusOccupied, h.Status)
	assert.Equal(t, int64(250), h.Price)
}

func TestService_Delete(t *testing.T) {
	id := uuid.New()

	ctrl := gomock.NewController(t)
	repo := house.NewMockRepository(ctrl)
	repo.EXPECT().DeleteHouses(gomock.Any(), []uuid.UUID{id}).Return(int64(0), nil)

	err := house.NewService(repo).Delete(context.Background(), id)
	require.ErrorIs(t, err, house.ErrNotFound)
}

func TestService_DeleteMany_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)

	_, err := house.NewService(house.NewMockRepository(ctrl)).DeleteMany(context.Background(), nil)
	require.ErrorIs(t, err, house.ErrInvalidInput)
}

func TestService_BulkCreate(t *testing.T) {
	t.Run("PartialSuccess", func(t *testing.T) {
		bad := validInput()
		bad.Price = 0

		ctrl := gomock.NewController(t)
		repo := house.NewMockRepository(ctrl)
		repo.EXPECT().CreateHouses(gomock.Any(), gomock.Len(2)).Return(nil)

		res, err := house.NewService(repo).BulkCreate(context.Background(), house.RowsFromInputs([]house.Input{validInput(), bad, validInput()}))
		require.NoError(t, err)
		assert.Len(t, res.Created, 2)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, 2, res.Errors[0].Row)
	})

	t.Run("NothingValid", func(t *testing.T) {
		bad := validInput()
		bad.Type = ""

		ctrl := gomock.NewController(t)

		res, err := house.NewService(house.NewMockRepository(ctrl)).BulkCreate(context.Background(), house.RowsFromInputs([]house.Input{bad}))
		require.ErrorIs(t, err, house.ErrInvalidInput)
		require.NotNil(t, res)
		assert.Len(t, res.Errors, 1)
	})

	t.Run("DecodeErrorsReported", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := house.NewMockRepository(ctrl)
		repo.EXPECT().CreateHouses(gomock.Any(), gomock.Len(1)).Return(nil)

		res, err := house.NewService(repo).BulkCreate(context.Background(), []house.BulkRow{
			{Row: 2, Input: validInput()},
			{Row: 3, Err: errors.New("invalid price \"abc\"")},
		})
		require.NoError(t, err)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, house.RowError{Row: 3, Message: `invalid price "abc"`}, res.Errors[0])
	})
}
