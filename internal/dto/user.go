package dto

import (
	"time"

	"github.com/yukikurage/task-project-api/internal/models"
)

// RegisterDTO is the body of POST /api/auth/register
type RegisterDTO struct {
	Username string  `json:"username" binding:"required,min=3,max=50"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password string  `json:"password" binding:"required,max=72"`
}

// LoginDTO is the body of POST /api/auth/login
type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserDTO represents the current user in API responses
type UserDTO struct {
	ID          uint64          `json:"id"`
	Username    string          `json:"username"`
	Email       *string         `json:"email,omitempty"`
	Role        models.UserRole `json:"role"`
	Authorities []string        `json:"authorities"`
	CreatedAt   time.Time       `json:"created_at"`
}

// UserSummaryDTO is embedded wherever a user is referenced
type UserSummaryDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserDTO   `json:"user"`
}

func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role,
		Authorities: user.Authorities(),
		CreatedAt:   user.CreatedAt,
	}
}

func ToUserSummary(user models.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}
