package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/google/uuid"

	"github.com/homestay/homestay/internal/booking"
	"github.com/homestay/homestay/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectBookingColumns = `
	b.id, b.user_id, b.house_id, b.start_date, b.end_date, b.status, b.payment_status,
	b.created_at, b.updated_at, u.username, u.email, h.name, h.type, h.price, h.address
`

const bookingJoins = `
	FROM bookings b
	LEFT JOIN users u ON b.user_id = u.id
	LEFT JOIN houses h ON b.house_id = h.id`

// scanBooking reads a booking row joined with its user and house.
// Expected column order matches selectBookingColumns.
func scanBooking(s scanner) (*booking.Booking, error) {
	var b booking.Booking

	var status, paymentStatus string

	var username, email, houseName, houseType, houseAddress sql.NullString

	var housePrice sql.NullInt64

	if err := s.Scan(
		&b.ID, &b.UserID, &b.HouseID, &b.StartDate, &b.EndDate, &status, &paymentStatus,
		&b.CreatedAt, &b.UpdatedAt, &username, &email, &houseName, &houseType, &housePrice, &houseAddress,
	); err != nil {
		return nil, err
	}

	b.Status = booking.Status(status)
	b.PaymentStatus = booking.PaymentStatus(paymentStatus)

	if username.Valid {
		b.User = &booking.UserSummary{Username: username.String, Email: email.String}
	}

	if houseName.Valid {
		b.House = &booking.HouseSummary{
			Name:    houseName.String,
			Type:    houseType.String,
			Price:   housePrice.Int64,
			Address: houseAddress.String,
		}
	}

	return &b, nil
}

func (s *Store) GetBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query := `SELECT ` + selectBookingColumns + bookingJoins + `
		WHERE b.id = $1`

	b, err := scanBooking(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrNotFound
		}

		return nil, fmt.Errorf("getting booking: %w", err)
	}

	return b, nil
}

func (s *Store) ListBookings(ctx context.Context, filter booking.ListFilter) ([]*booking.Booking, error) {
	query := `SELECT ` + selectBookingColumns + bookingJoins + `
		WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.HouseID != nil {
		query += fmt.Sprintf(" AND b.house_id = $%d", argIdx)

		args = append(args, *filter.HouseID)
		argIdx++
	}

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND b.user_id = $%d", argIdx)

		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND b.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	query += " ORDER BY b.created_at DESC"

	return queryBookings(ctx, s.db, "listing bookings", query, args...)
}

func (s *Store) FindConflicts(ctx context.Context, q booking.ConflictQuery) ([]*booking.Booking, error) {
	return findConflicts(ctx, s.db, q)
}

func (s *Store) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting booking: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting booking: %w", err)
	}

	if n == 0 {
		return booking.ErrNotFound
	}

	return nil
}

// conflictQuery builds the overlap lookup. An existing booking conflicts
// with [start, end) when it contains start, contains end, or lies inside
// the requested range.
func conflictQuery(q booking.ConflictQuery) (string, []any) {
	query := `SELECT ` + selectBookingColumns + bookingJoins + `
		WHERE b.house_id = $1
		AND (
			(b.start_date <= $2 AND b.end_date > $2)
			OR (b.start_date < $3 AND b.end_date >= $3)
			OR (b.start_date >= $2 AND b.end_date <= $3)
		)`

	args := []any{q.HouseID, q.Range.Start, q.Range.End}
	argIdx := 4

	if len(q.Statuses) > 0 {
		placeholders := make([]string, len(q.Statuses))
		for i, st := range q.Statuses {
			placeholders[i] = fmt.Sprintf("$%d", argIdx)

			args = append(args, string(st))
			argIdx++
		}

		query += " AND b.status IN (" + strings.Join(placeholders, ", ") + ")"
	}

	if q.ExcludeID != uuid.Nil {
		query += fmt.Sprintf(" AND b.id <> $%d", argIdx)

		args = append(args, q.ExcludeID)
	}

	query += " ORDER BY b.start_date ASC"

	return query, args
}

func findConflicts(ctx context.Context, db querier, q booking.ConflictQuery) ([]*booking.Booking, error) {
	query, args := conflictQuery(q)
	return queryBookings(ctx, db, "finding conflicts", query, args...)
}

func queryBookings(ctx context.Context, db querier, op, query string, args ...any) ([]*booking.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var bookings []*booking.Booking

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning booking: %w", err)
		}

		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating booking rows: %w", err)
	}

	return bookings, nil
}

func houseLockKey(houseID uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write([]byte("bookings:"))
	h.Write(houseID[:])

	return int64(h.Sum64())
}

type writeTx struct {
	tx *sql.Tx
}

func (s *Store) BeginWrite(ctx context.Context, houseID uuid.UUID) (booking.WriteTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning booking tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", houseLockKey(houseID)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring house lock: %w", err)
	}

	return &writeTx{tx: dbTx}, nil
}

func (w *writeTx) Commit() error   { return w.tx.Commit() }
func (w *writeTx) Rollback() error { return w.tx.Rollback() }

func (w *writeTx) GetBookingForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query := `SELECT ` + selectBookingColumns + bookingJoins + `
		WHERE b.id = $1
		FOR UPDATE OF b`

	b, err := scanBooking(w.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrNotFound
		}

		return nil, fmt.Errorf("locking booking: %w", err)
	}

	return b, nil
}

func (w *writeTx) FindConflicts(ctx context.Context, q booking.ConflictQuery) ([]*booking.Booking, error) {
	return findConflicts(ctx, w.tx, q)
}

func (w *writeTx) CreateBooking(ctx context.Context, b *booking.Booking) error {
	query := `
		INSERT INTO bookings (user_id, house_id, start_date, end_date, status, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := w.tx.QueryRowContext(ctx, query,
		b.UserID,
		b.HouseID,
		b.StartDate,
		b.EndDate,
		b.Status,
		b.PaymentStatus,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating booking: %w", translate(err))
	}

	return nil
}

func (w *writeTx) UpdateBooking(ctx context.Context, b *booking.Booking) error {
	query := `
		UPDATE bookings
		SET start_date = $1, end_date = $2, status = $3, payment_status = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := w.tx.QueryRowContext(ctx, query,
		b.StartDate,
		b.EndDate,
		b.Status,
		b.PaymentStatus,
		b.ID,
	).Scan(&b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.ErrNotFound
		}

		return fmt.Errorf("updating booking: %w", translate(err))
	}

	return nil
}

// translate maps constraint violations onto domain errors.
func translate(err error) error {
	switch {
	case database.IsCode(err, database.CodeExclusionViolation):
		return booking.ErrOverlap
	case database.IsCode(err, database.CodeForeignKey):
		return booking.ErrUnknownReference
	}

	return err
}
