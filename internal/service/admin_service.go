package service

import (
	"context"

	"github.com/ameliazsabrina/journalshe-sub000/internal/dto"
	"github.com/ameliazsabrina/journalshe-sub000/internal/model"
	"github.com/ameliazsabrina/journalshe-sub000/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AdminService interface {
	CreateSchool(ctx context.Context, input dto.CreateSchoolInput) (*model.School, error)
	ListSchools(ctx context.Context) ([]model.School, error)
	CreateClass(ctx context.Context, input dto.CreateClassInput) (*model.Class, error)
	ListClasses(ctx context.Context, schoolID uuid.UUID) ([]model.Class, error)
	CreateTeacher(ctx context.Context, input dto.CreateTeacherInput) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
}

type adminService struct {
	users   repository.UserRepository
	classes repository.ClassRepository
}

func NewAdminService(users repository.UserRepository, classes repository.ClassRepository) AdminService {
	return &adminService{
		users:   users,
		classes: classes,
	}
}

func (s *adminService) CreateSchool(ctx context.Context, input dto.CreateSchoolInput) (*model.School, error) {
	school := &model.School{
		Name:    input.Name,
		Address: input.Address,
	}
	if err := s.classes.CreateSchool(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

func (s *adminService) ListSchools(ctx context.Context) ([]model.School, error) {
	return s.classes.ListSchools(ctx)
}

func (s *adminService) CreateClass(ctx context.Context, input dto.CreateClassInput) (*model.Class, error) {
	if _, err := s.classes.FindSchoolByID(ctx, input.SchoolID); err != nil {
		return nil, err
	}

	class := &model.Class{
		SchoolID: input.SchoolID,
		Name:     input.Name,
		Level:    input.Level,
	}
	if err := s.classes.CreateClass(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *adminService) ListClasses(ctx context.Context, schoolID uuid.UUID) ([]model.Class, error) {
	return s.classes.ListClassesBySchool(ctx, schoolID)
}

func (s *adminService) CreateTeacher(ctx context.Context, input dto.CreateTeacherInput) (*model.User, error) {
	if _, err := s.classes.FindSchoolByID(ctx, input.SchoolID); err != nil {
		return nil, err
	}

	role, err := s.users.FindRoleByName(ctx, RoleTeacher)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		RoleID:       &role.ID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	teacher := &model.Teacher{
		UserID:   user.ID,
		SchoolID: input.SchoolID,
	}
	if err := s.classes.CreateTeacher(ctx, teacher); err != nil {
		return nil, err
	}

	user.Role = *role
	return user, nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.users.FindAll(ctx)
}
