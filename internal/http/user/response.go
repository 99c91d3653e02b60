package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/homestay/homestay/internal/user"
)

type userResponse struct {
	ID             uuid.UUID `json:"_id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Role           user.Role `json:"role"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Address        string    `json:"address,omitempty"`
	DateOfBirth    string    `json:"dateOfBirth,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toResponse(u *user.User) userResponse {
	return userResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Role:           u.Role,
		ProfilePicture: u.ProfilePicture,
		Address:        u.Address,
		DateOfBirth:    u.DateOfBirth,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func toResponseList(users []*user.User) []userResponse {
	resp := make([]userResponse, len(users))
	for i, u := range users {
		resp[i] = toResponse(u)
	}

	return resp
}
