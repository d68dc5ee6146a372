package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Assignment struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ClassID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"class_id"`
	TeacherID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"teacher_id"`
	Title          string     `gorm:"size:200;not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	PointsPossible int        `gorm:"default:100" json:"points_possible"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Submission statuses. A submission is accepted as pending and graded
// later by the background worker.
const (
	SubmissionPending = "pending"
	SubmissionGraded  = "graded"
	SubmissionFailed  = "failed"
)

type Submission struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AssignmentID uuid.UUID  `gorm:"type:uuid;index;not null" json:"assignment_id"`
	Assignment   Assignment `gorm:"foreignKey:AssignmentID" json:"-"`
	StudentID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"student_id"`
	Content      string     `gorm:"type:text;not null" json:"content"`
	Status       string     `gorm:"size:20;default:'pending'" json:"status"`
	Score        *int       `json:"score,omitempty"`
	Feedback     *string    `gorm:"type:text" json:"feedback,omitempty"`
	SubmittedAt  time.Time  `gorm:"autoCreateTime" json:"submitted_at"`
	GradedAt     *time.Time `json:"graded_at,omitempty"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
