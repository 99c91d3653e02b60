package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound         = errors.New("booking not found")
	ErrInvalidInput     = errors.New("invalid booking input")
	ErrInvalidRange     = errors.New("invalid date range")
	ErrUnknownReference = errors.New("referenced user or house does not exist")
	// ErrOverlap is returned by stores when the storage layer rejects an
	// overlapping active booking.
	ErrOverlap  = errors.New("booking overlaps an existing booking")
	ErrConflict = errors.New("house is already booked for the requested dates")
)

// Conflict describes an existing booking that blocks a request.
type Conflict struct {
	StartDate time.Time
	EndDate   time.Time
	Status    Status
	Username  string
}

// ConflictError carries the bookings that overlap a rejected request.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %d overlapping booking(s)", ErrConflict, len(e.Conflicts))
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func newConflictError(existing []*Booking) *ConflictError {
	conflicts := make([]Conflict, 0, len(existing))

	for _, b := range existing {
		username := "Unknown"
		if b.User != nil && b.User.Username != "" {
			username = b.User.Username
		}

		conflicts = append(conflicts, Conflict{
			StartDate: b.StartDate,
			EndDate:   b.EndDate,
			Status:    b.Status,
			Username:  username,
		})
	}

	return &ConflictError{Conflicts: conflicts}
}
