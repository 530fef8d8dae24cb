package packets

import (
	"time"

	"github.com/pathsapp/backend/internal/model"
)

// UserResponse is the external view of a user. The password hash is never
// part of it.
type UserResponse struct {
	ID            int     `json:"id"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Nickname      *string `json:"nickname"`
	Email         string  `json:"email"`
	EmailVerified bool    `json:"email_verified"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// UserView projects a stored user into its response shape.
func UserView(u *model.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Nickname:      u.Nickname,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     u.UpdatedAt.Format(time.RFC3339),
	}
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type TakenResponse struct {
	Taken bool `json:"taken"`
}
