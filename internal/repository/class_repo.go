package repository

import (
	"context"

	"github.com/ameliazsabrina/journalshe-sub000/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassRepository interface {
	CreateSchool(ctx context.Context, school *model.School) error
	FindSchoolByID(ctx context.Context, id uuid.UUID) (*model.School, error)
	ListSchools(ctx context.Context) ([]model.School, error)

	CreateClass(ctx context.Context, class *model.Class) error
	FindClassByID(ctx context.Context, id uuid.UUID) (*model.Class, error)
	ListClassesBySchool(ctx context.Context, schoolID uuid.UUID) ([]model.Class, error)

	CreateTeacher(ctx context.Context, teacher *model.Teacher) error
	FindTeacherByUserID(ctx context.Context, userID uuid.UUID) (*model.Teacher, error)
}

type classRepository struct {
	db *gorm.DB
}

func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) CreateSchool(ctx context.Context, school *model.School) error {
	return r.db.WithContext(ctx).Create(school).Error
}

func (r *classRepository) FindSchoolByID(ctx context.Context, id uuid.UUID) (*model.School, error) {
	var school model.School
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&school).Error; err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *classRepository) ListSchools(ctx context.Context) ([]model.School, error) {
	var schools []model.School
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&schools).Error
	return schools, err
}

func (r *classRepository) CreateClass(ctx context.Context, class *model.Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepository) FindClassByID(ctx context.Context, id uuid.UUID) (*model.Class, error) {
	var class model.Class
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&class).Error; err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepository) ListClassesBySchool(ctx context.Context, schoolID uuid.UUID) ([]model.Class, error) {
	var classes []model.Class
	err := r.db.WithContext(ctx).Where("school_id = ?", schoolID).Find(&classes).Error
	return classes, err
}

func (r *classRepository) CreateTeacher(ctx context.Context, teacher *model.Teacher) error {
	return r.db.WithContext(ctx).Create(teacher).Error
}

func (r *classRepository) FindTeacherByUserID(ctx context.Context, userID uuid.UUID) (*model.Teacher, error) {
	var teacher model.Teacher
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&teacher).Error; err != nil {
		return nil, err
	}
	return &teacher, nil
}
