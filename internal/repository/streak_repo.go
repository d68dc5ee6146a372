package repository

import (
	"context"
	"time"

	"github.com/ameliazsabrina/journalshe-sub000/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StreakRepository interface {
	// CreateEntry inserts the day's streak row. It reports false when a row
	// for (userID, loginDate) already exists: the insert resolves through
	// ON CONFLICT DO NOTHING, so a concurrent duplicate is indistinguishable
	// from a repeated call and both take the idempotent path.
	CreateEntry(ctx context.Context, entry *model.LoginStreak) (bool, error)
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*model.LoginStreak, error)
}

type streakRepository struct {
	db *gorm.DB
}

func NewStreakRepository(db *gorm.DB) StreakRepository {
	return &streakRepository{db: db}
}

func (r *streakRepository) CreateEntry(ctx context.Context, entry *model.LoginStreak) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "login_date"}},
		DoNothing: true,
	}).Create(entry)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *streakRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*model.LoginStreak, error) {
	var entry model.LoginStreak
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND login_date = ?", userID, date).
		First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}
