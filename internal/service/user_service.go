package service

import (
	"context"
	"fmt"

	"github.com/LogM3/Poster/internal/cache"
	"github.com/LogM3/Poster/internal/models"
	"github.com/LogM3/Poster/internal/repository"
	"github.com/LogM3/Poster/internal/storage"
)

type UserService interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	DeleteUser(ctx context.Context, actor *models.Actor, username string) error
}

type userService struct {
	userRepo repository.UserRepository
	store    storage.Storage
	pages    *cache.PageCache
}

func NewUserService(userRepo repository.UserRepository, store storage.Storage, pages *cache.PageCache) UserService {
	return &userService{
		userRepo: userRepo,
		store:    store,
		pages:    pages,
	}
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetUserByUsername(ctx, username)
}

// DeleteUser removes an account with everything it authored. Only the owner
// or an administrator may do it.
func (s *userService) DeleteUser(ctx context.Context, actor *models.Actor, username string) error {
	// get user by username
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	if actor == nil || (actor.UserID != user.UserID && !actor.IsAdmin()) {
		return fmt.Errorf("удалить аккаунт может только владелец: %w", models.ErrForbidden)
	}

	images, err := s.userRepo.DeleteUser(ctx, user.UserID)
	if err != nil {
		return err
	}

	for _, image := range images {
		removeImage(ctx, s.store, image)
	}
	s.pages.Purge()

	return nil
}
