package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/homestay/homestay/internal/booking"
	"github.com/homestay/homestay/internal/database"
	"github.com/homestay/homestay/internal/payment"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectPaymentColumns = `
	SELECT p.id, p.booking_id, p.amount, p.payment_method, p.card_last4, p.transaction_id,
		p.status, p.created_at, b.start_date, b.end_date, b.status, b.payment_status,
		u.username, u.email, h.name, h.price
	FROM payments p
	LEFT JOIN bookings b ON p.booking_id = b.id
	LEFT JOIN users u ON b.user_id = u.id
	LEFT JOIN houses h ON b.house_id = h.id`

type scanner interface {
	Scan(dest ...any) error
}

func scanPayment(s scanner) (*payment.Payment, error) {
	var p payment.Payment

	var method, status string

	var (
		start, end                          sql.NullTime
		bookingStatus, bookingPaymentStatus sql.NullString
		username, email, houseName          sql.NullString
		housePrice                          sql.NullInt64
	)

	if err := s.Scan(
		&p.ID, &p.BookingID, &p.Amount, &method, &p.CardLast4, &p.TransactionID, &status,
		&p.CreatedAt, &start, &end, &bookingStatus, &bookingPaymentStatus,
		&username, &email, &houseName, &housePrice,
	); err != nil {
		return nil, err
	}

	p.Method = payment.Method(method)
	p.Status = payment.Status(status)

	if start.Valid {
		p.Booking = &payment.BookingSummary{
			StartDate:     start.Time,
			EndDate:       end.Time,
			Status:        booking.Status(bookingStatus.String),
			PaymentStatus: booking.PaymentStatus(bookingPaymentStatus.String),
			Username:      username.String,
			Email:         email.String,
			HouseName:     houseName.String,
			HousePrice:    housePrice.Int64,
		}
	}

	return &p, nil
}

func (s *Store) GetPayment(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	p, err := scanPayment(s.db.QueryRowContext(ctx, selectPaymentColumns+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payment.ErrNotFound
		}

		return nil, fmt.Errorf("getting payment: %w", err)
	}

	return p, nil
}

func (s *Store) ListPayments(ctx context.Context, filter payment.ListFilter) ([]*payment.Payment, error) {
	query := selectPaymentColumns + ` WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.BookingID != nil {
		query += fmt.Sprintf(" AND p.booking_id = $%d", argIdx)

		args = append(args, *filter.BookingID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND p.status = $%d", argIdx)

		args = append(args, *filter.Status)
	}

	query += " ORDER BY p.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*payment.Payment

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return payments, nil
}

func (s *Store) CompletedRevenue(ctx context.Context) (int64, error) {
	var total int64

	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'completed'`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing revenue: %w", err)
	}

	return total, nil
}

const confirmBookingQuery = `
	UPDATE bookings
	SET status = 'confirmed', payment_status = 'paid', updated_at = NOW()
	WHERE id = $1`

// confirmBooking marks the booking paid. Reactivating a cancelled booking
// can collide with a newer reservation, which the exclusion constraint
// rejects.
func confirmBooking(ctx context.Context, tx *sql.Tx, bookingID uuid.UUID) error {
	res, err := tx.ExecContext(ctx, confirmBookingQuery, bookingID)
	if err != nil {
		if database.IsCode(err, database.CodeExclusionViolation) {
			return payment.ErrBookingConflict
		}

		return fmt.Errorf("confirming booking: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("confirming booking: %w", err)
	}

	if n == 0 {
		return payment.ErrBookingNotFound
	}

	return nil
}

func (s *Store) CreateAndConfirm(ctx context.Context, p *payment.Payment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning payment tx: %w", err)
	}
	defer tx.Rollback()

	if err := confirmBooking(ctx, tx, p.BookingID); err != nil {
		return err
	}

	query := `
		INSERT INTO payments (booking_id, amount, payment_method, card_last4, transaction_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, query,
		p.BookingID,
		p.Amount,
		p.Method,
		p.CardLast4,
		p.TransactionID,
		p.Status,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if database.IsCode(err, database.CodeUniqueViolation) {
			return payment.ErrDuplicateTransaction
		}

		return fmt.Errorf("creating payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing payment tx: %w", err)
	}

	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status payment.Status, confirm bool) (*payment.Payment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning payment tx: %w", err)
	}
	defer tx.Rollback()

	p := &payment.Payment{ID: id, Status: status}

	err = tx.QueryRowContext(ctx,
		`UPDATE payments SET status = $1 WHERE id = $2 RETURNING booking_id`, status, id,
	).Scan(&p.BookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payment.ErrNotFound
		}

		return nil, fmt.Errorf("updating payment: %w", err)
	}

	if confirm {
		if err := confirmBooking(ctx, tx, p.BookingID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing payment tx: %w", err)
	}

	return p, nil
}
