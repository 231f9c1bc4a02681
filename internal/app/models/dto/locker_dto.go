package dto

import "github.com/yigit/lockersys/internal/app/models"

// CreateLockerRequest represents the payload for adding a locker
type CreateLockerRequest struct {
	Number       string              `json:"number" binding:"required"`
	Location     string              `json:"location" binding:"required"`
	Size         models.LockerSize   `json:"size" binding:"required,oneof=small medium large"`
	Status       models.LockerStatus `json:"status" binding:"omitempty,oneof=available rented maintenance reserved"`
	MonthlyPrice float64             `json:"monthlyPrice" binding:"gte=0"`
}

// UpdateLockerRequest is a partial update; nil fields keep their stored value
type UpdateLockerRequest struct {
	Number       *string              `json:"number,omitempty" binding:"omitempty,min=1"`
	Location     *string              `json:"location,omitempty" binding:"omitempty,min=1"`
	Size         *models.LockerSize   `json:"size,omitempty" binding:"omitempty,oneof=small medium large"`
	Status       *models.LockerStatus `json:"status,omitempty" binding:"omitempty,oneof=available rented maintenance reserved"`
	MonthlyPrice *float64             `json:"monthlyPrice,omitempty" binding:"omitempty,gte=0"`
}
