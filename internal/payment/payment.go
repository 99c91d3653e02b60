package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/homestay/homestay/internal/booking"
)

type Method string

const (
	MethodCard Method = "card"
	MethodBank Method = "bank"
	MethodCash Method = "cash"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCard, MethodBank, MethodCash:
		return true
	}

	return false
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	}

	return false
}

var (
	ErrNotFound             = errors.New("payment not found")
	ErrInvalidInput         = errors.New("invalid payment input")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrBookingConflict      = errors.New("booking dates are no longer available")
	ErrDuplicateTransaction = errors.New("transaction id already used")
)

type Payment struct {
	ID            uuid.UUID
	BookingID     uuid.UUID
	Amount        int64
	Method        Method
	CardLast4     string
	TransactionID string
	Status        Status
	CreatedAt     time.Time
	Booking       *BookingSummary
}

// BookingSummary is the booking a payment belongs to, with its guest and
// house.
type BookingSummary struct {
	StartDate     time.Time
	EndDate       time.Time
	Status        booking.Status
	PaymentStatus booking.PaymentStatus
	Username      string
	Email         string
	HouseName     string
	HousePrice    int64
}
