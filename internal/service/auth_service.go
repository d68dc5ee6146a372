package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ameliazsabrina/journalshe-sub000/internal/dto"
	"github.com/ameliazsabrina/journalshe-sub000/internal/model"
	"github.com/ameliazsabrina/journalshe-sub000/internal/repository"
	"github.com/ameliazsabrina/journalshe-sub000/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	// Register creates a student account enrolled in the given class.
	Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error)
}

type authService struct {
	users    repository.UserRepository
	students repository.StudentRepository
	classes  repository.ClassRepository
	secret   string
	tokenTTL time.Duration
}

// NewAuthService takes the signing secret explicitly; there is no ambient
// process-wide secret.
func NewAuthService(users repository.UserRepository, students repository.StudentRepository, classes repository.ClassRepository, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		users:    users,
		students: students,
		classes:  classes,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	if _, err := s.classes.FindClassByID(ctx, input.ClassID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: class", apperror.ErrNotFound)
		}
		return nil, err
	}

	role, err := s.users.FindRoleByName(ctx, RoleStudent)
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
	user.Role = *role

	student := &model.Student{
		UserID:  user.ID,
		ClassID: input.ClassID,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(user)
}

func (s *authService) buildAuthResponse(user *model.User) (*dto.AuthResponse, error) {
	expiresAt := time.Now().Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role.Name,
	}, nil
}
