package models

import "time"

// Locker is a rentable storage unit
type Locker struct {
	ID           string       `json:"id" db:"id"`
	Number       string       `json:"number" db:"number" example:"A001"`
	Location     string       `json:"location" db:"location" example:"Bloco A - 1º Andar"`
	Size         LockerSize   `json:"size" db:"size" example:"medium"`
	Status       LockerStatus `json:"status" db:"status" example:"available"`
	MonthlyPrice float64      `json:"monthlyPrice" db:"monthly_price" example:"300"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`
}

// GetID returns the record identifier
func (l Locker) GetID() string { return l.ID }
