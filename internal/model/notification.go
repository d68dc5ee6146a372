package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notification struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	EntityID   uuid.UUID `gorm:"type:uuid" json:"entity_id"`
	EntityType string    `gorm:"type:varchar(50);not null" json:"entity_type"` // 'submission', 'assignment'
	Type       string    `gorm:"type:varchar(50);not null" json:"type"`        // 'submission_graded', 'new_assignment'
	Message    string    `gorm:"type:text" json:"message"`
	IsRead     bool      `gorm:"default:false" json:"is_read"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
