package house

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOccupied Status = "occupied"
	StatusVacant   Status = "vacant"
)

// ParseStatus accepts the canonical values plus the labels used by the admin
// spreadsheet template. Empty input yields StatusVacant.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vacant", "trả phòng":
		return StatusVacant, true
	case "occupied", "đang thuê":
		return StatusOccupied, true
	}

	return "", false
}

var (
	ErrNotFound     = errors.New("house not found")
	ErrInvalidInput = errors.New("invalid house input")
)

type Agent struct {
	Image string `json:"image"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type House struct {
	ID          uuid.UUID
	Type        string
	Name        string
	Description string
	Image       string
	ImageLg     string
	Country     string
	Address     string
	Bedrooms    string
	Bathrooms   string
	Surface     string
	Year        string
	Price       int64
	Status      Status
	Agent       Agent
	OwnerID     *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
