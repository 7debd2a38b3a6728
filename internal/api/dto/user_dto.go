package dto

import (
	"time"

	"github.com/campus-it/lab-support/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// ChangePasswordRequest payload for password updates.
type ChangePasswordRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// UserResponse is the public wire form of an account.
type UserResponse struct {
	UserID    string      `json:"user_id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Role      domain.Role `json:"role"`
	Email     string      `json:"email"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
