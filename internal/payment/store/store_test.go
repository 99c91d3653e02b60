package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homestay/homestay/internal/database"
	"github.com/homestay/homestay/internal/payment"
)

func newPayment(bookingID uuid.UUID) *payment.Payment {
	return &payment.Payment{
		BookingID:     bookingID,
		Amount:        50000,
		Method:        payment.MethodCard,
		CardLast4:     "4242",
		TransactionID: "TXN1717200000000ABCDEFGHI",
		Status:        payment.StatusCompleted,
	}
}

func TestStore_CreateAndConfirm(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	bookingID := uuid.New()
	paymentID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings")).
		WithArgs(bookingID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
		WithArgs(bookingID, int64(50000), payment.MethodCard, "4242", "TXN1717200000000ABCDEFGHI", payment.StatusCompleted).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(paymentID.String(), time.Now()))
	mock.ExpectCommit()

	p := newPayment(bookingID)
	require.NoError(t, New(db).CreateAndConfirm(context.Background(), p))
	assert.Equal(t, paymentID, p.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateAndConfirm_RollsBack(t *testing.T) {
	bookingID := uuid.New()

	type testCase struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}

	tests := []testCase{
		{
			name: "UnknownBooking",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings")).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: payment.ErrBookingNotFound,
		},
		{
			name: "ReactivationOverlaps",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings")).
					WillReturnError(&pgconn.PgError{Code: database.CodeExclusionViolation})
			},
			wantErr: payment.ErrBookingConflict,
		},
		{
			name: "PaymentInsertFails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings")).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
					WillReturnError(&pgconn.PgError{Code: database.CodeUniqueViolation})
			},
			wantErr: payment.ErrDuplicateTransaction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectBegin()
			tt.setup(mock)
			mock.ExpectRollback()

			err = New(db).CreateAndConfirm(context.Background(), newPayment(bookingID))
			require.ErrorIs(t, err, tt.wantErr)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_UpdateStatus_Completed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id, bookingID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE payments SET status = $1")).
		WithArgs(payment.StatusCompleted, id).
		WillReturnRows(sqlmock.NewRows([]string{"booking_id"}).AddRow(bookingID.String()))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings")).
		WithArgs(bookingID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	p, err := New(db).UpdateStatus(context.Background(), id, payment.StatusCompleted, true)
	require.NoError(t, err)
	assert.Equal(t, bookingID, p.BookingID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UpdateStatus_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE payments")).
		WillReturnRows(sqlmock.NewRows([]string{"booking_id"}))
	mock.ExpectRollback()

	_, err = New(db).UpdateStatus(context.Background(), uuid.New(), payment.StatusFailed, false)
	require.ErrorIs(t, err, payment.ErrNotFound)
}

func TestStore_CompletedRevenue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SUM(amount)")).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(int64(125000)))

	total, err := New(db).CompletedRevenue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(125000), total)
}
