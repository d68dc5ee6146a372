package service

import (
	"context"
	"errors"
	"log"

	"github.com/ameliazsabrina/journalshe-sub000/internal/dto"
	"github.com/ameliazsabrina/journalshe-sub000/internal/model"
	"github.com/ameliazsabrina/journalshe-sub000/internal/repository"
	"github.com/ameliazsabrina/journalshe-sub000/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentService interface {
	Create(ctx context.Context, identity Identity, input dto.CreateAssignmentInput) (*model.Assignment, error)
	Update(ctx context.Context, identity Identity, id uuid.UUID, input dto.UpdateAssignmentInput) (*model.Assignment, error)
	Delete(ctx context.Context, identity Identity, id uuid.UUID) error
	ListByClass(ctx context.Context, identity Identity, classID uuid.UUID) ([]model.Assignment, error)
	Search(ctx context.Context, identity Identity, query string, limit int) ([]AssignmentHit, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	classes     repository.ClassRepository
	students    repository.StudentRepository
	search      SearchService
}

func NewAssignmentService(assignments repository.AssignmentRepository, classes repository.ClassRepository, students repository.StudentRepository, search SearchService) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		classes:     classes,
		students:    students,
		search:      search,
	}
}

func (s *assignmentService) Create(ctx context.Context, identity Identity, input dto.CreateAssignmentInput) (*model.Assignment, error) {
	teacher, err := s.requireTeacher(ctx, identity)
	if err != nil {
		return nil, err
	}

	if _, err := s.classes.FindClassByID(ctx, input.ClassID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	assignment := &model.Assignment{
		ClassID:        input.ClassID,
		TeacherID:      teacher.ID,
		Title:          input.Title,
		Description:    input.Description,
		DueDate:        input.DueDate,
		PointsPossible: input.PointsPossible,
	}
	if assignment.PointsPossible == 0 {
		assignment.PointsPossible = 100
	}

	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, err
	}

	if s.search != nil {
		if err := s.search.IndexAssignment(assignment); err != nil {
			log.Printf("failed to index assignment %s: %v", assignment.ID, err)
		}
	}

	return assignment, nil
}

func (s *assignmentService) Update(ctx context.Context, identity Identity, id uuid.UUID, input dto.UpdateAssignmentInput) (*model.Assignment, error) {
	teacher, err := s.requireTeacher(ctx, identity)
	if err != nil {
		return nil, err
	}

	assignment, err := s.assignments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	if assignment.TeacherID != teacher.ID {
		return nil, apperror.ErrForbidden
	}

	if input.Title != nil {
		assignment.Title = *input.Title
	}
	if input.Description != nil {
		assignment.Description = *input.Description
	}
	if input.DueDate != nil {
		assignment.DueDate = input.DueDate
	}
	if input.PointsPossible != nil {
		assignment.PointsPossible = *input.PointsPossible
	}

	if err := s.assignments.Update(ctx, assignment); err != nil {
		return nil, err
	}

	if s.search != nil {
		if err := s.search.IndexAssignment(assignment); err != nil {
			log.Printf("failed to reindex assignment %s: %v", assignment.ID, err)
		}
	}

	return assignment, nil
}

func (s *assignmentService) Delete(ctx context.Context, identity Identity, id uuid.UUID) error {
	teacher, err := s.requireTeacher(ctx, identity)
	if err != nil {
		return err
	}

	assignment, err := s.assignments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	if assignment.TeacherID != teacher.ID {
		return apperror.ErrForbidden
	}

	if err := s.assignments.Delete(ctx, id); err != nil {
		return err
	}

	if s.search != nil {
		if err := s.search.DeleteAssignment(id.String()); err != nil {
			log.Printf("failed to remove assignment %s from index: %v", id, err)
		}
	}

	return nil
}

func (s *assignmentService) ListByClass(ctx context.Context, identity Identity, classID uuid.UUID) ([]model.Assignment, error) {
	switch identity.Role {
	case RoleTeacher, RoleAdmin:
	case RoleStudent:
		student, err := s.students.FindByUserID(ctx, identity.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.ErrForbidden
			}
			return nil, err
		}
		if student.ClassID != classID {
			return nil, apperror.ErrForbidden
		}
	default:
		return nil, apperror.ErrForbidden
	}

	return s.assignments.ListByClass(ctx, classID)
}

func (s *assignmentService) Search(ctx context.Context, identity Identity, query string, limit int) ([]AssignmentHit, error) {
	if s.search == nil {
		return []AssignmentHit{}, nil
	}

	// Students only see their own class; staff search across classes.
	classID := ""
	if identity.Role == RoleStudent {
		student, err := s.students.FindByUserID(ctx, identity.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.ErrNotFound
			}
			return nil, err
		}
		classID = student.ClassID.String()
	}

	return s.search.SearchAssignments(query, classID, limit)
}

func (s *assignmentService) requireTeacher(ctx context.Context, identity Identity) (*model.Teacher, error) {
	if identity.Role != RoleTeacher {
		return nil, apperror.ErrForbidden
	}
	teacher, err := s.classes.FindTeacherByUserID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrForbidden
		}
		return nil, err
	}
	return teacher, nil
}
