package models

import "time"

// Student is a person who can rent lockers. StudentID is the human-facing enrolment code.
type Student struct {
	ID        string        `json:"id" db:"id" example:"4f1c2f7e-8b1e-4d43-9a53-0c4ef5a7f0a1"`
	Name      string        `json:"name" db:"name" example:"João Silva"`
	Email     string        `json:"email" db:"email" example:"joao.silva@university.edu"`
	Phone     string        `json:"phone" db:"phone" example:"(11) 99999-1111"`
	StudentID string        `json:"studentId" db:"student_code" example:"STU2024001"`
	Course    string        `json:"course" db:"course" example:"Engenharia de Software"`
	Semester  int           `json:"semester" db:"semester" example:"6"`
	Status    StudentStatus `json:"status" db:"status" example:"active"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" db:"updated_at"`
}

// GetID returns the record identifier
func (s Student) GetID() string { return s.ID }
