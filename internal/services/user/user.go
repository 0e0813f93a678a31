// Package services содержит бизнес-логику работы с профилем пользователя.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/milk-delivery/internal/models"
)

// ProfileRepository определяет методы хранилища для работы с профилем.
type ProfileRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, userUID string, name, address *string) error
}

// UserService реализует чтение и обновление профиля пользователя.
type UserService struct {
	repo ProfileRepository
	log  *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo ProfileRepository, log *slog.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
	}
}

// Profile возвращает профиль пользователя по UID.
func (s *UserService) Profile(ctx context.Context, userUID string) (*models.User, error) {
	return s.repo.GetUser(ctx, userUID)
}

// UpdateProfile обновляет имя и адрес пользователя. Nil-поля не меняются.
func (s *UserService) UpdateProfile(ctx context.Context, userUID string, req models.DummyProfileUpdate) (*models.User, error) {
	if err := s.repo.UpdateUserProfile(ctx, userUID, req.Name, req.Address); err != nil {
		return nil, err
	}
	s.log.Info("updated user profile", slog.String("user_uid", userUID))
	return s.repo.GetUser(ctx, userUID)
}
