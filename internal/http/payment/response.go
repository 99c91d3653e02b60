package payment

import (
	"time"

	"github.com/google/uuid"

	"github.com/homestay/homestay/internal/booking"
	"github.com/homestay/homestay/internal/payment"
)

type bookingResponse struct {
	StartDate     time.Time             `json:"startDate"`
	EndDate       time.Time             `json:"endDate"`
	Status        booking.Status        `json:"status"`
	PaymentStatus booking.PaymentStatus `json:"paymentStatus"`
	User          struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
	House struct {
		Name  string `json:"name"`
		Price int64  `json:"price"`
	} `json:"house"`
}

type paymentResponse struct {
	ID            uuid.UUID        `json:"_id"`
	BookingID     uuid.UUID        `json:"bookingId"`
	Booking       *bookingResponse `json:"booking,omitempty"`
	Amount        int64            `json:"amount"`
	PaymentMethod payment.Method   `json:"paymentMethod"`
	CardLast4     string           `json:"cardLast4,omitempty"`
	TransactionID string           `json:"transactionId"`
	Status        payment.Status   `json:"status"`
	CreatedAt     time.Time        `json:"createdAt"`
}

func toResponse(p *payment.Payment) paymentResponse {
	resp := paymentResponse{
		ID:            p.ID,
		BookingID:     p.BookingID,
		Amount:        p.Amount,
		PaymentMethod: p.Method,
		CardLast4:     p.CardLast4,
		TransactionID: p.TransactionID,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
	}

	if b := p.Booking; b != nil {
		br := &bookingResponse{
			StartDate:     b.StartDate,
			EndDate:       b.EndDate,
			Status:        b.Status,
			PaymentStatus: b.PaymentStatus,
		}
		br.User.Username = b.Username
		br.User.Email = b.Email
		br.House.Name = b.HouseName
		br.House.Price = b.HousePrice
		resp.Booking = br
	}

	return resp
}

func toResponseList(payments []*payment.Payment) []paymentResponse {
	resp := make([]paymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toResponse(p)
	}

	return resp
}
