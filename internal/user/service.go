package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/homestay/homestay/internal/auth"
	"github.com/homestay/homestay/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetAdminByUsername(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateUser(ctx context.Context, u *User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	CountUsers(ctx context.Context) (int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type RegisterParams struct {
	Username string `json:"username" validate:"required,min=3,max=30,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=3"`
	Role     Role   `json:"role" validate:"omitempty,oneof=user admin"`
}

type UpdateParams struct {
	Username       *string `json:"username" validate:"omitempty,min=3,max=30,username"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Role           *Role   `json:"role" validate:"omitempty,oneof=user admin"`
	ProfilePicture *string `json:"profilePicture"`
	Address        *string `json:"address" validate:"omitempty,max=200"`
	DateOfBirth    *string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	params.Username = strings.TrimSpace(params.Username)
	params.Email = normalizeEmail(params.Email)

	if err := validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	role := params.Role
	if role == "" {
		role = RoleUser
	}

	u := &User{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Login checks an email/password pair. Unknown emails and wrong passwords
// return the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	u, err := s.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	return u, s.checkPassword(u, password)
}

func (s *Service) AdminLogin(ctx context.Context, username, password string) (*User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	u, err := s.repo.GetAdminByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	return u, s.checkPassword(u, password)
}

func (s *Service) checkPassword(u *User, password string) error {
	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return ErrInvalidCredentials
		}

		return err
	}

	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.CountUsers(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*User, error) {
	if err := validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Username != nil {
		u.Username = strings.TrimSpace(*params.Username)
	}

	if params.Email != nil {
		u.Email = normalizeEmail(*params.Email)
	}

	if params.Role != nil {
		u.Role = *params.Role
	}

	if params.ProfilePicture != nil {
		u.ProfilePicture = *params.ProfilePicture
	}

	if params.Address != nil {
		u.Address = strings.TrimSpace(*params.Address)
	}

	if params.DateOfBirth != nil {
		u.DateOfBirth = *params.DateOfBirth
	}

	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	if current == "" || next == "" {
		return fmt.Errorf("%w: current and new password are required", ErrInvalidInput)
	}

	if len(next) < 3 {
		return fmt.Errorf("%w: new password must be at least 3 characters", ErrInvalidInput)
	}

	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return err
	}

	if err := s.checkPassword(u, current); err != nil {
		return err
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, id, hash)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteUser(ctx, id)
}

// EnsureAdmin creates the admin account when no user with that username
// exists yet. It reports whether a user was created.
func (s *Service) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	_, err := s.repo.GetAdminByUsername(ctx, username)
	if err == nil {
		return false, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	_, err = s.Register(ctx, RegisterParams{
		Username: username,
		Email:    email,
		Password: password,
		Role:     RoleAdmin,
	})
	if errors.Is(err, ErrAlreadyExists) {
		return false, nil
	}

	return err == nil, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
