package payment

import (
	"errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homestay/homestay/internal/http/middleware"
	"github.com/homestay/homestay/internal/http/respond"
	"github.com/homestay/homestay/internal/payment"
)

type Handler struct {
	svc *payment.Service
}

func NewHandler(svc *payment.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.With(middleware.RequireRole(middleware.RoleAdmin)).Patch("/{id}", h.updateStatus)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, payment.ErrInvalidInput):
		respond.Invalid(w, err)
	case errors.Is(err, payment.ErrNotFound):
		respond.Message(w, http.StatusNotFound, "payment not found")
	case errors.Is(err, payment.ErrBookingNotFound):
		respond.Message(w, http.StatusNotFound, "booking not found")
	case errors.Is(err, payment.ErrBookingConflict):
		respond.Message(w, http.StatusConflict, "the booking's dates were taken by another booking")
	default:
		respond.Internal(w, r, err)
	}
}

type createPaymentRequest struct {
	BookingID     uuid.UUID           `json:"bookingId"`
	Amount        decimal.NullDecimal `json:"amount"`
	PaymentMethod payment.Method      `json:"paymentMethod"`
	CardLast4     string              `json:"cardLast4"`
}

// Amounts outside int64 would wrap in IntPart.
var (
	maxAmount = decimal.NewFromInt(math.MaxInt64)
	minAmount = decimal.NewFromInt(math.MinInt64)
)

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Invalid(w, err)
		return
	}

	if req.BookingID == uuid.Nil || !req.Amount.Valid {
		respond.Message(w, http.StatusBadRequest, "bookingId and amount are required")
		return
	}

	if !req.Amount.Decimal.IsInteger() {
		respond.Message(w, http.StatusBadRequest, "amount must be a whole number")
		return
	}

	if req.Amount.Decimal.GreaterThan(maxAmount) || req.Amount.Decimal.LessThan(minAmount) {
		respond.Message(w, http.StatusBadRequest, "amount is out of range")
		return
	}

	p, err := h.svc.Create(r.Context(), payment.CreateParams{
		BookingID: req.BookingID,
		Amount:    req.Amount.Decimal.IntPart(),
		Method:    req.PaymentMethod,
		CardLast4: req.CardLast4,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, struct {
		Message string          `json:"message"`
		Payment paymentResponse `json:"payment"`
	}{
		Message: "Payment successful. Booking confirmed.",
		Payment: toResponse(p),
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := payment.ListFilter{}
	q := r.URL.Query()

	if s := q.Get("bookingId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Message(w, http.StatusBadRequest, "invalid bookingId")
			return
		}

		filter.BookingID = &id
	}

	if s := q.Get("status"); s != "" {
		filter.Status = new(payment.Status(s))
	}

	payments, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(payments))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}

type updateStatusRequest struct {
	Status payment.Status `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateStatusRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Invalid(w, err)
		return
	}

	p, err := h.svc.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, struct {
		Message string          `json:"message"`
		Payment paymentResponse `json:"payment"`
	}{
		Message: "Payment status updated.",
		Payment: toResponse(p),
	})
}
