package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Role controls access to administrative endpoints.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidInput       = errors.New("invalid user input")
	ErrAlreadyExists      = errors.New("email or username already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// User is an account. PasswordHash is a bcrypt hash and never leaves the
// service layer.
type User struct {
	ID             uuid.UUID
	Username       string
	Email          string
	PasswordHash   string
	Role           Role
	ProfilePicture string
	Address        string
	DateOfBirth    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
