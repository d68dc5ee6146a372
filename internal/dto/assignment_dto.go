package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAssignmentInput struct {
	ClassID        uuid.UUID  `json:"class_id" binding:"required"`
	Title          string     `json:"title" binding:"required,max=200"`
	Description    string     `json:"description"`
	DueDate        *time.Time `json:"due_date"`
	PointsPossible int        `json:"points_possible" binding:"omitempty,min=1,max=1000"`
}

type UpdateAssignmentInput struct {
	Title          *string    `json:"title" binding:"omitempty,max=200"`
	Description    *string    `json:"description"`
	DueDate        *time.Time `json:"due_date"`
	PointsPossible *int       `json:"points_possible" binding:"omitempty,min=1,max=1000"`
}

type SubmitInput struct {
	Content string `json:"content" binding:"required,min=10"`
}
