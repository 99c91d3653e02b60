package payment

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=payment
type Repository interface {
	// CreateAndConfirm stores p and marks its booking confirmed and paid in
	// one transaction.
	CreateAndConfirm(ctx context.Context, p *Payment) error
	// UpdateStatus sets the payment status and, when confirmBooking is set,
	// marks the booking confirmed and paid in the same transaction.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, confirmBooking bool) (*Payment, error)
	GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error)
	ListPayments(ctx context.Context, filter ListFilter) ([]*Payment, error)
	CompletedRevenue(ctx context.Context) (int64, error)
}

// Observer receives payment events. A nil Observer is allowed.
type Observer interface {
	PaymentCreated(method string, amount int64)
	PaymentFailed(reason string)
}

type Service struct {
	repo    Repository
	metrics Observer
	now     func() time.Time
}

func NewService(repo Repository, metrics Observer) *Service {
	return &Service{repo: repo, metrics: metrics, now: time.Now}
}

type ListFilter struct {
	BookingID *uuid.UUID
	Status    *Status
}

type CreateParams struct {
	BookingID uuid.UUID
	Amount    int64
	Method    Method
	CardLast4 string
}

var cardLast4Pattern = regexp.MustCompile(`^[0-9]{4}$`)

// maxTxidAttempts bounds retries when a generated transaction id collides.
const maxTxidAttempts = 3

// Create records a completed payment and confirms its booking.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Payment, error) {
	if params.BookingID == uuid.Nil {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	if params.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	if params.Method == "" {
		params.Method = MethodCard
	}

	if !params.Method.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, params.Method)
	}

	if params.CardLast4 != "" && !cardLast4Pattern.MatchString(params.CardLast4) {
		return nil, fmt.Errorf("%w: cardLast4 must be 4 digits", ErrInvalidInput)
	}

	p := &Payment{
		BookingID: params.BookingID,
		Amount:    params.Amount,
		Method:    params.Method,
		CardLast4: params.CardLast4,
		Status:    StatusCompleted,
	}

	var err error

	for range maxTxidAttempts {
		p.TransactionID = NewTransactionID(s.now())

		err = s.repo.CreateAndConfirm(ctx, p)
		if !errors.Is(err, ErrDuplicateTransaction) {
			break
		}
	}

	if err != nil {
		s.failed(err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PaymentCreated(string(p.Method), p.Amount)
	}

	return s.repo.GetPayment(ctx, p.ID)
}

func (s *Service) failed(err error) {
	if s.metrics == nil {
		return
	}

	switch {
	case errors.Is(err, ErrBookingNotFound):
		s.metrics.PaymentFailed("booking_not_found")
	case errors.Is(err, ErrBookingConflict):
		s.metrics.PaymentFailed("booking_conflict")
	default:
		s.metrics.PaymentFailed("error")
	}
}

// UpdateStatus changes a payment's status. Moving to completed re-confirms
// the booking.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Payment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, status)
	}

	if _, err := s.repo.UpdateStatus(ctx, id, status, status == StatusCompleted); err != nil {
		return nil, err
	}

	return s.repo.GetPayment(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return s.repo.GetPayment(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Payment, error) {
	return s.repo.ListPayments(ctx, filter)
}

// Revenue sums the amounts of completed payments.
func (s *Service) Revenue(ctx context.Context) (int64, error) {
	return s.repo.CompletedRevenue(ctx)
}
