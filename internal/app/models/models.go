package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin RoleType = "admin"
	RoleUser  RoleType = "user"
)

// StudentStatus is the enrolment state of a student
type StudentStatus string

const (
	StudentActive   StudentStatus = "active"
	StudentInactive StudentStatus = "inactive"
)

// Valid reports whether s is a known student status
func (s StudentStatus) Valid() bool {
	return s == StudentActive || s == StudentInactive
}

// LockerSize is the physical size class of a locker
type LockerSize string

const (
	LockerSmall  LockerSize = "small"
	LockerMedium LockerSize = "medium"
	LockerLarge  LockerSize = "large"
)

// Valid reports whether s is a known locker size
func (s LockerSize) Valid() bool {
	switch s {
	case LockerSmall, LockerMedium, LockerLarge:
		return true
	}
	return false
}

// LockerStatus is the availability state of a locker
type LockerStatus string

const (
	LockerAvailable   LockerStatus = "available"
	LockerRented      LockerStatus = "rented"
	LockerMaintenance LockerStatus = "maintenance"
	LockerReserved    LockerStatus = "reserved"
)

// Valid reports whether s is a known locker status
func (s LockerStatus) Valid() bool {
	switch s {
	case LockerAvailable, LockerRented, LockerMaintenance, LockerReserved:
		return true
	}
	return false
}

// RentalStatus is the lifecycle state of a rental
type RentalStatus string

const (
	RentalActive    RentalStatus = "active"
	RentalOverdue   RentalStatus = "overdue"
	RentalCompleted RentalStatus = "completed"
	RentalCancelled RentalStatus = "cancelled"
)

// Valid reports whether s is a known rental status
func (s RentalStatus) Valid() bool {
	switch s {
	case RentalActive, RentalOverdue, RentalCompleted, RentalCancelled:
		return true
	}
	return false
}

// Open reports whether the rental still holds its locker
func (s RentalStatus) Open() bool {
	return s == RentalActive || s == RentalOverdue
}

// OpenRentalStatuses lists the statuses that block deleting the referenced locker or student
var OpenRentalStatuses = []RentalStatus{RentalActive, RentalOverdue}

// PaymentStatus is the settlement state of a rental
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentOverdue PaymentStatus = "overdue"
)

// Valid reports whether s is a known payment status
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentOverdue:
		return true
	}
	return false
}
