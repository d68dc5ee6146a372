package service

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/ameliazsabrina/journalshe-sub000/internal/model"
	"github.com/ameliazsabrina/journalshe-sub000/internal/repository"
	"github.com/ameliazsabrina/journalshe-sub000/pkg/apperror"
	"github.com/ameliazsabrina/journalshe-sub000/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, r io.Reader, fileName string) (string, error)
}

type profileService struct {
	users        repository.UserRepository
	imageStorage storage.ImageStorage
}

func NewProfileService(users repository.UserRepository, imageStorage storage.ImageStorage) ProfileService {
	return &profileService{
		users:        users,
		imageStorage: imageStorage,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *profileService) UpdateAvatar(ctx context.Context, userID uuid.UUID, r io.Reader, fileName string) (string, error) {
	user, err := s.users.FindByID(ctx, userID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperror.ErrNotFound
		}
		return "", err
	}

	url, err := s.imageStorage.UploadImage(ctx, r, "avatars", fileName)
	if err != nil {
		return "", err
	}

	old := user.AvatarURL
	user.AvatarURL = &url
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}

	if old != nil && *old != "" {
		if err := s.imageStorage.DeleteImage(ctx, *old); err != nil {
			log.Printf("failed to delete previous avatar for user %s: %v", userID, err)
		}
	}

	return url, nil
}
