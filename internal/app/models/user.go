package models

import (
	"time"
)

// User is the identity behind a session
type User struct {
	ID           string    `json:"id" example:"1"`
	Name         string    `json:"name" example:"Admin User"`
	Email        string    `json:"email" example:"admin@lockers.com"`
	PasswordHash string    `json:"-"`
	Role         RoleType  `json:"role" example:"admin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
