package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=booking
type Repository interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListBookings(ctx context.Context, filter ListFilter) ([]*Booking, error)
	FindConflicts(ctx context.Context, q ConflictQuery) ([]*Booking, error)
	DeleteBooking(ctx context.Context, id uuid.UUID) error

	// BeginWrite opens a transaction that holds the house's booking lock
	// until Commit or Rollback.
	BeginWrite(ctx context.Context, houseID uuid.UUID) (WriteTx, error)
}

type WriteTx interface {
	FindConflicts(ctx context.Context, q ConflictQuery) ([]*Booking, error)
	// GetBookingForUpdate reads the booking and row-locks it until the
	// transaction ends.
	GetBookingForUpdate(ctx context.Context, id uuid.UUID) (*Booking, error)
	CreateBooking(ctx context.Context, b *Booking) error
	UpdateBooking(ctx context.Context, b *Booking) error
	Commit() error
	Rollback() error
}

// Observer receives booking lifecycle events; a nil Observer is allowed.
type Observer interface {
	BookingCreated()
	BookingRejected(reason string)
	AvailabilityChecked(available bool)
}

type Service struct {
	repo    Repository
	metrics Observer
}

func NewService(repo Repository, metrics Observer) *Service {
	return &Service{repo: repo, metrics: metrics}
}

// ConflictQuery selects bookings of HouseID whose range overlaps Range and
// whose status is one of Statuses. ExcludeID, when set, is left out.
type ConflictQuery struct {
	HouseID   uuid.UUID
	Range     Range
	Statuses  []Status
	ExcludeID uuid.UUID
}

type ListFilter struct {
	HouseID *uuid.UUID
	UserID  *uuid.UUID
	Status  *Status
}

type CreateParams struct {
	UserID    uuid.UUID
	HouseID   uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// UpdateParams holds the optional fields of a partial update.
type UpdateParams struct {
	StartDate     *time.Time
	EndDate       *time.Time
	Status        *Status
	PaymentStatus *PaymentStatus
}

type Availability struct {
	Available bool
	Conflicts []*Booking
}

// HasConflict reports whether any booking of houseID in one of statuses
// overlaps r.
func (s *Service) HasConflict(ctx context.Context, houseID uuid.UUID, r Range, statuses []Status) (bool, error) {
	conflicts, err := s.repo.FindConflicts(ctx, ConflictQuery{HouseID: houseID, Range: r, Statuses: statuses})
	if err != nil {
		return false, fmt.Errorf("finding conflicts: %w", err)
	}

	return len(conflicts) > 0, nil
}

// CheckAvailability only looks at confirmed bookings.
func (s *Service) CheckAvailability(ctx context.Context, houseID uuid.UUID, r Range) (*Availability, error) {
	if houseID == uuid.Nil {
		return nil, fmt.Errorf("%w: house id is required", ErrInvalidInput)
	}

	conflicts, err := s.repo.FindConflicts(ctx, ConflictQuery{
		HouseID:  houseID,
		Range:    r,
		Statuses: AvailabilityStatuses,
	})
	if err != nil {
		return nil, fmt.Errorf("finding conflicts: %w", err)
	}

	available := len(conflicts) == 0
	if s.metrics != nil {
		s.metrics.AvailabilityChecked(available)
	}

	return &Availability{Available: available, Conflicts: conflicts}, nil
}

// Create auto-confirms a booking when no pending or confirmed booking of the
// same house overlaps it. Otherwise it returns a *ConflictError and nothing
// is persisted.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Booking, error) {
	if params.UserID == uuid.Nil || params.HouseID == uuid.Nil {
		return nil, fmt.Errorf("%w: user and house are required", ErrInvalidInput)
	}

	r, err := NewRange(params.StartDate, params.EndDate)
	if err != nil {
		return nil, err
	}

	wtx, err := s.repo.BeginWrite(ctx, params.HouseID)
	if err != nil {
		return nil, fmt.Errorf("begin booking write: %w", err)
	}
	defer wtx.Rollback()

	existing, err := wtx.FindConflicts(ctx, ConflictQuery{
		HouseID:  params.HouseID,
		Range:    r,
		Statuses: ReservationStatuses,
	})
	if err != nil {
		return nil, fmt.Errorf("finding conflicts: %w", err)
	}

	if len(existing) > 0 {
		s.rejected("conflict")
		return nil, newConflictError(existing)
	}

	b := &Booking{
		UserID:        params.UserID,
		HouseID:       params.HouseID,
		StartDate:     r.Start,
		EndDate:       r.End,
		Status:        StatusConfirmed,
		PaymentStatus: PaymentUnpaid,
	}
	if err := wtx.CreateBooking(ctx, b); err != nil {
		if errors.Is(err, ErrOverlap) {
			s.rejected("overlap_constraint")
			return nil, s.overlapConflict(ctx, ConflictQuery{
				HouseID:  params.HouseID,
				Range:    r,
				Statuses: ReservationStatuses,
			})
		}

		return nil, fmt.Errorf("create booking: %w", err)
	}

	if err := wtx.Commit(); err != nil {
		return nil, fmt.Errorf("commit booking: %w", err)
	}

	if s.metrics != nil {
		s.metrics.BookingCreated()
	}

	return b, nil
}

// Update applies a partial update. Changing the dates, or moving a cancelled
// booking back to an active state, re-runs the conflict check against the
// house's other active bookings. The params are applied to a copy read
// under a row lock, so concurrent payment confirmations are not overwritten.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Booking, error) {
	if params.Status != nil && !params.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *params.Status)
	}

	if params.PaymentStatus != nil && !params.PaymentStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, *params.PaymentStatus)
	}

	current, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	wtx, err := s.repo.BeginWrite(ctx, current.HouseID)
	if err != nil {
		return nil, fmt.Errorf("begin booking write: %w", err)
	}
	defer wtx.Rollback()

	b, err := wtx.GetBookingForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	wasActive := b.Status.Active()
	start, end := b.StartDate, b.EndDate

	if params.StartDate != nil {
		start = *params.StartDate
	}

	if params.EndDate != nil {
		end = *params.EndDate
	}

	r, err := NewRange(start, end)
	if err != nil {
		return nil, err
	}

	if params.Status != nil {
		b.Status = *params.Status
	}

	if params.PaymentStatus != nil {
		b.PaymentStatus = *params.PaymentStatus
	}

	datesChanged := !r.Start.Equal(b.StartDate) || !r.End.Equal(b.EndDate)
	b.StartDate, b.EndDate = r.Start, r.End

	q := ConflictQuery{
		HouseID:   b.HouseID,
		Range:     r,
		Statuses:  ReservationStatuses,
		ExcludeID: b.ID,
	}

	if b.Status.Active() && (datesChanged || !wasActive) {
		existing, err := wtx.FindConflicts(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("finding conflicts: %w", err)
		}

		if len(existing) > 0 {
			s.rejected("conflict")
			return nil, newConflictError(existing)
		}
	}

	if err := wtx.UpdateBooking(ctx, b); err != nil {
		if errors.Is(err, ErrOverlap) {
			s.rejected("overlap_constraint")
			return nil, s.overlapConflict(ctx, q)
		}

		return nil, fmt.Errorf("update booking: %w", err)
	}

	if err := wtx.Commit(); err != nil {
		return nil, fmt.Errorf("commit booking: %w", err)
	}

	return b, nil
}

// overlapConflict lists the committed bookings that made the storage layer
// reject a write. The lookup runs outside the failed transaction.
func (s *Service) overlapConflict(ctx context.Context, q ConflictQuery) *ConflictError {
	existing, err := s.repo.FindConflicts(ctx, q)
	if err != nil {
		slog.Error("failed to list overlapping bookings", "house_id", q.HouseID, "error", err)
		return &ConflictError{}
	}

	return newConflictError(existing)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.repo.GetBooking(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Booking, error) {
	return s.repo.ListBookings(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteBooking(ctx, id)
}

func (s *Service) rejected(reason string) {
	if s.metrics != nil {
		s.metrics.BookingRejected(reason)
	}
}
