package booking

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}

	return false
}

// Active reports whether a booking in this state holds its dates.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// PaymentStatus tracks whether a booking has been paid for.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentUnpaid, PaymentPaid, PaymentRefunded:
		return true
	}

	return false
}

var (
	// AvailabilityStatuses are the states considered when a guest checks a house's calendar.
	AvailabilityStatuses = []Status{StatusConfirmed}
	// ReservationStatuses are the states that block a new booking from being created.
	ReservationStatuses = []Status{StatusConfirmed, StatusPending}
)

// Booking is a reservation of a house by a user over a half-open date range.
type Booking struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	HouseID       uuid.UUID
	StartDate     time.Time
	EndDate       time.Time
	Status        Status
	PaymentStatus PaymentStatus
	User          *UserSummary  // Loaded via JOIN
	House         *HouseSummary // Loaded via JOIN
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (b *Booking) Range() Range {
	return Range{Start: b.StartDate, End: b.EndDate}
}

type UserSummary struct {
	Username string
	Email    string
}

type HouseSummary struct {
	Name    string
	Type    string
	Price   int64
	Address string
}
