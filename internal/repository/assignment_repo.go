package repository

import (
	"context"
	"time"

	"github.com/ameliazsabrina/journalshe-sub000/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	Update(ctx context.Context, assignment *model.Assignment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error)
	ListByClass(ctx context.Context, classID uuid.UUID) ([]model.Assignment, error)

	CreateSubmission(ctx context.Context, submission *model.Submission) error
	FindSubmissionByID(ctx context.Context, id uuid.UUID) (*model.Submission, error)
	ListSubmissionsByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]model.Submission, error)
	ListSubmissionsByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Submission, error)
	UpdateSubmissionResult(ctx context.Context, id uuid.UUID, status string, score *int, feedback *string, gradedAt *time.Time) error
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *assignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Assignment{}, "id = ?", id).Error
}

func (r *assignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error) {
	var assignment model.Assignment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) ListByClass(ctx context.Context, classID uuid.UUID) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("created_at desc").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepository) CreateSubmission(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *assignmentRepository) FindSubmissionByID(ctx context.Context, id uuid.UUID) (*model.Submission, error) {
	var submission model.Submission
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *assignmentRepository) ListSubmissionsByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("submitted_at desc").
		Find(&submissions).Error
	return submissions, err
}

func (r *assignmentRepository) ListSubmissionsByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("submitted_at desc").
		Find(&submissions).Error
	return submissions, err
}

func (r *assignmentRepository) UpdateSubmissionResult(ctx context.Context, id uuid.UUID, status string, score *int, feedback *string, gradedAt *time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Submission{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":    status,
			"score":     score,
			"feedback":  feedback,
			"graded_at": gradedAt,
		}).Error
}
