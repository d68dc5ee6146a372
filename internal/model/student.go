package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student links a user to their current class and carries the denormalized
// streak counter. StreakDays and LastLogin are written only by the streak
// service; ClassID only by class-assignment operations.
type Student struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User       User       `gorm:"foreignKey:UserID" json:"user"`
	ClassID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"class_id"`
	Class      Class      `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	StreakDays int        `gorm:"default:0" json:"streak_days"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
