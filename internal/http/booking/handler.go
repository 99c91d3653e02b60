package booking

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/homestay/homestay/internal/booking"
	"github.com/homestay/homestay/internal/http/respond"
)

type Handler struct {
	svc *booking.Service
}

func NewHandler(svc *booking.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/check-availability", h.checkAvailability)
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// writeError maps booking errors onto status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var conflictErr *booking.ConflictError

	switch {
	case errors.As(err, &conflictErr):
		respond.JSON(w, http.StatusConflict, toConflictBody(conflictErr))
	case errors.Is(err, booking.ErrInvalidRange):
		respond.Message(w, http.StatusBadRequest, "endDate must be after startDate")
	case errors.Is(err, booking.ErrInvalidInput):
		respond.Invalid(w, err)
	case errors.Is(err, booking.ErrNotFound):
		respond.Message(w, http.StatusNotFound, "booking not found")
	case errors.Is(err, booking.ErrUnknownReference):
		respond.Message(w, http.StatusNotFound, "user or house not found")
	default:
		respond.Internal(w, r, err)
	}
}

func idParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, errors.New("invalid " + name)
	}

	return id, nil
}

type createBookingRequest struct {
	User      uuid.UUID `json:"user"`
	House     uuid.UUID `json:"house"`
	UserID    uuid.UUID `json:"userId"`
	HouseID   uuid.UUID `json:"houseId"`
	StartDate dateValue `json:"startDate"`
	EndDate   dateValue `json:"endDate"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Invalid(w, err)
		return
	}

	userID, houseID := req.User, req.House
	if userID == uuid.Nil {
		userID = req.UserID
	}

	if houseID == uuid.Nil {
		houseID = req.HouseID
	}

	if userID == uuid.Nil || houseID == uuid.Nil || !req.StartDate.set || !req.EndDate.set {
		respond.Message(w, http.StatusBadRequest, "user, house, startDate and endDate are required")
		return
	}

	b, err := h.svc.Create(r.Context(), booking.CreateParams{
		UserID:    userID,
		HouseID:   houseID,
		StartDate: req.StartDate.Time,
		EndDate:   req.EndDate.Time,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	if populated, err := h.svc.Get(r.Context(), b.ID); err == nil {
		b = populated
	}

	respond.JSON(w, http.StatusCreated, struct {
		Message string          `json:"message"`
		Booking bookingResponse `json:"booking"`
	}{
		Message: "Booking confirmed automatically.",
		Booking: toResponse(b),
	})
}

type availabilityResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
	Conflicts int    `json:"conflicts"`
}

func (h *Handler) checkAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("houseId") == "" || q.Get("startDate") == "" || q.Get("endDate") == "" {
		respond.Message(w, http.StatusBadRequest, "houseId, startDate and endDate are required")
		return
	}

	houseID, err := uuid.Parse(q.Get("houseId"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid houseId")
		return
	}

	start, err := parseDate(q.Get("startDate"))
	if err != nil {
		respond.Invalid(w, err)
		return
	}

	end, err := parseDate(q.Get("endDate"))
	if err != nil {
		respond.Invalid(w, err)
		return
	}

	rng, err := booking.NewRange(start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}

	avail, err := h.svc.CheckAvailability(r.Context(), houseID, rng)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := availabilityResponse{
		Available: avail.Available,
		Message:   "The house is available for these dates.",
		Conflicts: len(avail.Conflicts),
	}
	if !avail.Available {
		resp.Message = "The house is already booked during this period."
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := booking.ListFilter{}
	q := r.URL.Query()

	if s := q.Get("houseId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Message(w, http.StatusBadRequest, "invalid houseId")
			return
		}

		filter.HouseID = &id
	}

	if s := q.Get("userId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Message(w, http.StatusBadRequest, "invalid userId")
			return
		}

		filter.UserID = &id
	}

	if s := q.Get("status"); s != "" {
		filter.Status = new(booking.Status(s))
	}

	bookings, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(bookings))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respond.Invalid(w, err)
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(b))
}

type updateBookingRequest struct {
	StartDate     dateValue              `json:"startDate"`
	EndDate       dateValue              `json:"endDate"`
	Status        *booking.Status        `json:"status"`
	PaymentStatus *booking.PaymentStatus `json:"paymentStatus"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respond.Invalid(w, err)
		return
	}

	var req updateBookingRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Invalid(w, err)
		return
	}

	params := booking.UpdateParams{
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
	}

	if req.StartDate.set {
		params.StartDate = &req.StartDate.Time
	}

	if req.EndDate.set {
		params.EndDate = &req.EndDate.Time
	}

	b, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if populated, err := h.svc.Get(r.Context(), b.ID); err == nil {
		b = populated
	}

	respond.JSON(w, http.StatusOK, struct {
		Message string          `json:"message"`
		Booking bookingResponse `json:"booking"`
	}{
		Message: "Booking updated.",
		Booking: toResponse(b),
	})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respond.Invalid(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	respond.Message(w, http.StatusOK, "Booking deleted.")
}
