package dto

import "github.com/yigit/lockersys/internal/app/models"

// CreateStudentRequest represents the payload for registering a student
type CreateStudentRequest struct {
	Name      string               `json:"name" binding:"required"`
	Email     string               `json:"email" binding:"required,email"`
	Phone     string               `json:"phone"`
	StudentID string               `json:"studentId" binding:"required"`
	Course    string               `json:"course" binding:"required"`
	Semester  int                  `json:"semester" binding:"required,gt=0"`
	Status    models.StudentStatus `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateStudentRequest is a partial update; nil fields keep their stored value
type UpdateStudentRequest struct {
	Name      *string               `json:"name,omitempty" binding:"omitempty,min=1"`
	Email     *string               `json:"email,omitempty" binding:"omitempty,email"`
	Phone     *string               `json:"phone,omitempty"`
	StudentID *string               `json:"studentId,omitempty" binding:"omitempty,min=1"`
	Course    *string               `json:"course,omitempty" binding:"omitempty,min=1"`
	Semester  *int                  `json:"semester,omitempty" binding:"omitempty,gt=0"`
	Status    *models.StudentStatus `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
}
