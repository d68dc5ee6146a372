package dto

import "github.com/google/uuid"

type CreateSchoolInput struct {
	Name    string  `json:"name" binding:"required,max=150"`
	Address *string `json:"address"`
}

type CreateClassInput struct {
	SchoolID uuid.UUID `json:"school_id" binding:"required"`
	Name     string    `json:"name" binding:"required,max=100"`
	Level    *string   `json:"level"`
}

type CreateTeacherInput struct {
	Username string    `json:"username" binding:"required,min=3,max=50"`
	Email    string    `json:"email" binding:"required,email"`
	Password string    `json:"password" binding:"required,min=8"`
	FullName string    `json:"full_name" binding:"required"`
	SchoolID uuid.UUID `json:"school_id" binding:"required"`
}
