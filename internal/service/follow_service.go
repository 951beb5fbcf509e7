package service

import (
	"context"
	"fmt"

	"github.com/LogM3/Poster/internal/models"
	"github.com/LogM3/Poster/internal/paginator"
	"github.com/LogM3/Poster/internal/repository"
)

type FollowService interface {
	Follow(ctx context.Context, actor *models.Actor, username string) error
	Unfollow(ctx context.Context, actor *models.Actor, username string) error
	Feed(ctx context.Context, actor *models.Actor, rawPage string) (*paginator.Page[models.Post], error)
}

type followService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	posts      *postLister
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository, posts *postLister) FollowService {
	return &followService{
		followRepo: followRepo,
		userRepo:   userRepo,
		posts:      posts,
	}
}

// Follow is idempotent: following yourself or someone already followed
// changes nothing.
func (s *followService) Follow(ctx context.Context, actor *models.Actor, username string) error {
	if actor == nil {
		return fmt.Errorf("подписка доступна только авторизованным пользователям: %w", models.ErrForbidden)
	}

	author, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	if author.UserID == actor.UserID {
		return nil
	}

	if _, err := s.followRepo.Create(ctx, actor.UserID, author.UserID); err != nil {
		return err
	}

	return nil
}

func (s *followService) Unfollow(ctx context.Context, actor *models.Actor, username string) error {
	if actor == nil {
		return fmt.Errorf("подписка доступна только авторизованным пользователям: %w", models.ErrForbidden)
	}

	author, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	if _, err := s.followRepo.Delete(ctx, actor.UserID, author.UserID); err != nil {
		return err
	}

	return nil
}

// Feed lists posts of every author the actor follows, newest first.
func (s *followService) Feed(ctx context.Context, actor *models.Actor, rawPage string) (*paginator.Page[models.Post], error) {
	if actor == nil {
		return nil, fmt.Errorf("лента подписок доступна только авторизованным пользователям: %w", models.ErrForbidden)
	}

	return s.posts.page(ctx, repository.PostFilter{FollowerID: &actor.UserID}, rawPage)
}
