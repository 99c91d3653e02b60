package house

import (
	"time"

	"github.com/google/uuid"

	"github.com/homestay/homestay/internal/house"
)

type houseResponse struct {
	ID          uuid.UUID    `json:"_id"`
	Type        string       `json:"type"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Image       string       `json:"image"`
	ImageLg     string       `json:"imageLg"`
	Country     string       `json:"country"`
	Address     string       `json:"address"`
	Bedrooms    string       `json:"bedrooms"`
	Bathrooms   string       `json:"bathrooms"`
	Surface     string       `json:"surface"`
	Year        string       `json:"year"`
	Price       int64        `json:"price"`
	Status      house.Status `json:"status"`
	Agent       house.Agent  `json:"agent"`
	Owner       *uuid.UUID   `json:"owner,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func toResponse(h *house.House) houseResponse {
	return houseResponse{
		ID:          h.ID,
		Type:        h.Type,
		Name:        h.Name,
		Description: h.Description,
		Image:       h.Image,
		ImageLg:     h.ImageLg,
		Country:     h.Country,
		Address:     h.Address,
		Bedrooms:    h.Bedrooms,
		Bathrooms:   h.Bathrooms,
		Surface:     h.Surface,
		Year:        h.Year,
		Price:       h.Price,
		Status:      h.Status,
		Agent:       h.Agent,
		Owner:       h.OwnerID,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

func toResponseList(houses []*house.House) []houseResponse {
	resp := make([]houseResponse, len(houses))
	for i, h := range houses {
		resp[i] = toResponse(h)
	}

	return resp
}

type bulkUploadResponse struct {
	Message string           `json:"message"`
	Created int              `json:"created"`
	Houses  []houseResponse  `json:"houses,omitempty"`
	Errors  []house.RowError `json:"errors,omitempty"`
}
