package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type School struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Address   *string   `gorm:"type:text" json:"address,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (s *School) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type Class struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SchoolID  uuid.UUID `gorm:"type:uuid;index;not null" json:"school_id"`
	School    School    `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Level     *string   `gorm:"size:50" json:"level,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Class) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Teacher struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	SchoolID  uuid.UUID `gorm:"type:uuid;index;not null" json:"school_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (t *Teacher) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
