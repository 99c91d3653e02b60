package house

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/homestay/homestay/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=house
type Repository interface {
	CreateHouses(ctx context.Context, houses []*House) error
	GetHouse(ctx context.Context, id uuid.UUID) (*House, error)
	ListHouses(ctx context.Context) ([]*House, error)
	UpdateHouse(ctx context.Context, h *House) error
	DeleteHouses(ctx context.Context, ids []uuid.UUID) (int64, error)
	CountHouses(ctx context.Context) (total, vacant int, err error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Input carries the writable fields of a house.
type Input struct {
	Type        string     `json:"type" validate:"required"`
	Name        string     `json:"name" validate:"required,max=200"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	ImageLg     string     `json:"imageLg"`
	Country     string     `json:"country"`
	Address     string     `json:"address"`
	Bedrooms    string     `json:"bedrooms"`
	Bathrooms   string     `json:"bathrooms"`
	Surface     string     `json:"surface"`
	Year        string     `json:"year"`
	Price       int64      `json:"price" validate:"gt=0"`
	Status      string     `json:"status"`
	Agent       Agent      `json:"agent"`
	OwnerID     *uuid.UUID `json:"owner"`
}

func (in Input) build() (*House, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.TrimSpace(in.Type)

	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	status, ok := ParseStatus(in.Status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, in.Status)
	}

	return &House{
		Type:        in.Type,
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
		ImageLg:     in.ImageLg,
		Country:     in.Country,
		Address:     in.Address,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		Surface:     in.Surface,
		Year:        in.Year,
		Price:       in.Price,
		Status:      status,
		Agent:       in.Agent,
		OwnerID:     in.OwnerID,
	}, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*House, error) {
	h, err := in.build()
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateHouses(ctx, []*House{h}); err != nil {
		return nil, err
	}

	return h, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*House, error) {
	return s.repo.GetHouse(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*House, error) {
	return s.repo.ListHouses(ctx)
}

// Counts returns the number of houses and how many of them are vacant.
func (s *Service) Counts(ctx context.Context) (total, vacant int, err error) {
	return s.repo.CountHouses(ctx)
}

// UpdateParams is a partial update; nil fields are left untouched.
type UpdateParams struct {
	Type        *string `json:"type"`
	Name        *string `json:"name" validate:"omitempty,max=200"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	ImageLg     *string `json:"imageLg"`
	Country     *string `json:"country"`
	Address     *string `json:"address"`
	Bedrooms    *string `json:"bedrooms"`
	Bathrooms   *string `json:"bathrooms"`
	Surface     *string `json:"surface"`
	Year        *string `json:"year"`
	Price       *int64  `json:"price" validate:"omitempty,gt=0"`
	Status      *string `json:"status"`
	Agent       *Agent  `json:"agent"`
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*House, error) {
	if err := validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	h, err := s.repo.GetHouse(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Status != nil {
		status, ok := ParseStatus(*params.Status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *params.Status)
		}

		h.Status = status
	}

	if params.Type != nil {
		if strings.TrimSpace(*params.Type) == "" {
			return nil, fmt.Errorf("%w: type cannot be empty", ErrInvalidInput)
		}

		h.Type = strings.TrimSpace(*params.Type)
	}

	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}

		h.Name = strings.TrimSpace(*params.Name)
	}

	setString(&h.Description, params.Description)
	setString(&h.Image, params.Image)
	setString(&h.ImageLg, params.ImageLg)
	setString(&h.Country, params.Country)
	setString(&h.Address, params.Address)
	setString(&h.Bedrooms, params.Bedrooms)
	setString(&h.Bathrooms, params.Bathrooms)
	setString(&h.Surface, params.Surface)
	setString(&h.Year, params.Year)

	if params.Price != nil {
		h.Price = *params.Price
	}

	if params.Agent != nil {
		h.Agent = *params.Agent
	}

	if err := s.repo.UpdateHouse(ctx, h); err != nil {
		return nil, err
	}

	return h, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.repo.DeleteHouses(ctx, []uuid.UUID{id})
	if err != nil {
		return err
	}

	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteMany removes every house in ids and reports how many existed.
func (s *Service) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: no ids given", ErrInvalidInput)
	}

	return s.repo.DeleteHouses(ctx, ids)
}

// RowError describes a bulk upload row that was skipped.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// BulkRow is one candidate house of a bulk upload. Row is the 1-based
// position in the uploaded document; Err is set when the row could not be
// decoded at all.
type BulkRow struct {
	Row   int
	Input Input
	Err   error
}

// RowsFromInputs numbers inputs from 1.
func RowsFromInputs(inputs []Input) []BulkRow {
	rows := make([]BulkRow, len(inputs))
	for i, in := range inputs {
		rows[i] = BulkRow{Row: i + 1, Input: in}
	}

	return rows
}

type BulkResult struct {
	Created []*House
	Errors  []RowError
}

// BulkCreate validates every row, inserts the valid ones in a single batch
// and reports the rest. It fails only when no row is valid.
func (s *Service) BulkCreate(ctx context.Context, rows []BulkRow) (*BulkResult, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no houses given", ErrInvalidInput)
	}

	res := &BulkResult{}

	valid := make([]*House, 0, len(rows))

	for _, row := range rows {
		if row.Err != nil {
			res.Errors = append(res.Errors, RowError{Row: row.Row, Message: row.Err.Error()})
			continue
		}

		h, err := row.Input.build()
		if err != nil {
			res.Errors = append(res.Errors, RowError{Row: row.Row, Message: err.Error()})
			continue
		}

		valid = append(valid, h)
	}

	if len(valid) == 0 {
		return res, fmt.Errorf("%w: no valid houses to upload", ErrInvalidInput)
	}

	if err := s.repo.CreateHouses(ctx, valid); err != nil {
		return nil, err
	}

	res.Created = valid

	return res, nil
}
