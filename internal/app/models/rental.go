package models

import "time"

// Rental binds one locker to one student for a date range.
// MonthlyPrice and TotalAmount are stored independently so discounts can be expressed.
type Rental struct {
	ID            string        `json:"id" db:"id"`
	LockerID      string        `json:"lockerId" db:"locker_id"`
	StudentID     string        `json:"studentId" db:"student_id"`
	StartDate     time.Time     `json:"startDate" db:"start_date"`
	EndDate       time.Time     `json:"endDate" db:"end_date"`
	MonthlyPrice  float64       `json:"monthlyPrice" db:"monthly_price"`
	TotalAmount   float64       `json:"totalAmount" db:"total_amount"`
	Status        RentalStatus  `json:"status" db:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus" db:"payment_status"`
	Notes         *string       `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" db:"updated_at"`

	// Joined snapshots, filled on read when the referenced record still exists
	Locker  *Locker  `json:"locker,omitempty"`
	Student *Student `json:"student,omitempty"`
}

// GetID returns the record identifier
func (r Rental) GetID() string { return r.ID }

// IsPastDue reports whether an open rental has run past its end date
func (r Rental) IsPastDue(now time.Time) bool {
	return r.Status == RentalActive && now.After(r.EndDate)
}
