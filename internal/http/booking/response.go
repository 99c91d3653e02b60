package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/homestay/homestay/internal/booking"
)

type userResponse struct {
	ID       uuid.UUID `json:"_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

type houseResponse struct {
	ID      uuid.UUID `json:"_id"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Price   int64     `json:"price"`
	Address string    `json:"address"`
}

type bookingResponse struct {
	ID            uuid.UUID             `json:"_id"`
	User          any                   `json:"user"`
	House         any                   `json:"house"`
	StartDate     time.Time             `json:"startDate"`
	EndDate       time.Time             `json:"endDate"`
	Status        booking.Status        `json:"status"`
	PaymentStatus booking.PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// toResponse populates user and house when the summaries were joined and
// falls back to the bare ids otherwise.
func toResponse(b *booking.Booking) bookingResponse {
	resp := bookingResponse{
		ID:            b.ID,
		User:          b.UserID,
		House:         b.HouseID,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	if b.User != nil {
		resp.User = userResponse{ID: b.UserID, Username: b.User.Username, Email: b.User.Email}
	}

	if b.House != nil {
		resp.House = houseResponse{
			ID:      b.HouseID,
			Name:    b.House.Name,
			Type:    b.House.Type,
			Price:   b.House.Price,
			Address: b.House.Address,
		}
	}

	return resp
}

func toResponseList(bookings []*booking.Booking) []bookingResponse {
	resp := make([]bookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = toResponse(b)
	}

	return resp
}

type conflictResponse struct {
	StartDate time.Time      `json:"startDate"`
	EndDate   time.Time      `json:"endDate"`
	Status    booking.Status `json:"status"`
	User      string         `json:"user"`
}

type conflictBody struct {
	Message   string             `json:"message"`
	Conflicts []conflictResponse `json:"conflicts"`
}

func toConflictBody(e *booking.ConflictError) conflictBody {
	body := conflictBody{
		Message:   "This house is already booked for the selected dates. Please choose different dates.",
		Conflicts: make([]conflictResponse, len(e.Conflicts)),
	}

	for i, c := range e.Conflicts {
		body.Conflicts[i] = conflictResponse{
			StartDate: c.StartDate,
			EndDate:   c.EndDate,
			Status:    c.Status,
			User:      c.Username,
		}
	}

	return body
}
