package dto

import (
	"time"

	"github.com/yigit/lockersys/internal/app/models"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@lockers.com"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// LoginResponse carries the session token and the identity it belongs to
type LoginResponse struct {
	Token     string      `json:"token"`
	TokenType string      `json:"tokenType" example:"Bearer"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      models.User `json:"user"`
}
