package model

import (
	"time"

	"github.com/google/uuid"
)

// PointLedgerEntry is an immutable grant of points to a student within a
// class. Totals are always computed by summing entries; a correction is a
// new entry, never an update.
type PointLedgerEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;index:idx_class_updated,priority:3;not null" json:"student_id"`
	Student   Student   `gorm:"foreignKey:StudentID" json:"-"`
	ClassID   uuid.UUID `gorm:"type:uuid;index:idx_class_updated,priority:1;not null" json:"class_id"`
	Points    int       `gorm:"not null" json:"points"`
	Reason    string    `gorm:"size:50" json:"reason"` // 'streak_bonus', 'assignment'
	Updated   time.Time `gorm:"index:idx_class_updated,priority:2;not null" json:"updated"`
}

// LoginStreak records one row per user per calendar day. The unique index
// on (user_id, login_date) makes a second write for the same day a no-op,
// which is what keeps daily login recording idempotent under races.
type LoginStreak struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_login_date,priority:1;not null" json:"user_id"`
	LoginDate   time.Time `gorm:"uniqueIndex:idx_user_login_date,priority:2;not null" json:"login_date"`
	Consecutive bool      `gorm:"not null" json:"consecutive"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
