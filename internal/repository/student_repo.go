package repository

import (
	"context"
	"time"

	"github.com/ameliazsabrina/journalshe-sub000/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Student, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Student, error)
	ListByClass(ctx context.Context, classID uuid.UUID) ([]model.Student, error)
	UpdateStreak(ctx context.Context, id uuid.UUID, streakDays int, lastLogin time.Time) error
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) ListByClass(ctx context.Context, classID uuid.UUID) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("class_id = ?", classID).
		Find(&students).Error
	return students, err
}

// UpdateStreak overwrites the denormalized streak counter. Only the streak
// service calls this.
func (r *studentRepository) UpdateStreak(ctx context.Context, id uuid.UUID, streakDays int, lastLogin time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Student{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"streak_days": streakDays,
			"last_login":  lastLogin,
		}).Error
}
