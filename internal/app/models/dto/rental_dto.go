package dto

import (
	"time"

	"github.com/yigit/lockersys/internal/app/models"
)

// CreateRentalRequest represents the payload for renting a locker to a student.
// MonthlyPrice defaults to the locker's price; TotalAmount defaults to
// MonthlyPrice times the number of started months in the range.
type CreateRentalRequest struct {
	LockerID      string               `json:"lockerId" binding:"required"`
	StudentID     string               `json:"studentId" binding:"required"`
	StartDate     time.Time            `json:"startDate" binding:"required"`
	EndDate       time.Time            `json:"endDate" binding:"required"`
	MonthlyPrice  *float64             `json:"monthlyPrice,omitempty" binding:"omitempty,gte=0"`
	TotalAmount   *float64             `json:"totalAmount,omitempty" binding:"omitempty,gte=0"`
	Status        models.RentalStatus  `json:"status" binding:"omitempty,oneof=active overdue completed cancelled"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus" binding:"omitempty,oneof=pending paid overdue"`
	Notes         *string              `json:"notes,omitempty"`
}

// UpdateRentalRequest is a partial update; nil fields keep their stored value.
// An empty Notes string clears the notes.
type UpdateRentalRequest struct {
	LockerID      *string               `json:"lockerId,omitempty" binding:"omitempty,min=1"`
	StudentID     *string               `json:"studentId,omitempty" binding:"omitempty,min=1"`
	StartDate     *time.Time            `json:"startDate,omitempty"`
	EndDate       *time.Time            `json:"endDate,omitempty"`
	MonthlyPrice  *float64              `json:"monthlyPrice,omitempty" binding:"omitempty,gte=0"`
	TotalAmount   *float64              `json:"totalAmount,omitempty" binding:"omitempty,gte=0"`
	Status        *models.RentalStatus  `json:"status,omitempty" binding:"omitempty,oneof=active overdue completed cancelled"`
	PaymentStatus *models.PaymentStatus `json:"paymentStatus,omitempty" binding:"omitempty,oneof=pending paid overdue"`
	Notes         *string               `json:"notes,omitempty"`
}
