package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/LogM3/Poster/internal/cache"
	"github.com/LogM3/Poster/internal/forms"
	"github.com/LogM3/Poster/internal/models"
	"github.com/LogM3/Poster/internal/repository"
)

type GroupService interface {
	List(ctx context.Context) ([]models.Group, error)
	Create(ctx context.Context, actor *models.Actor, form *forms.GroupForm) (*models.Group, error)
	Delete(ctx context.Context, actor *models.Actor, slug string) error
}

type groupService struct {
	groupRepo repository.GroupRepository
	validator *forms.Validator
	pages     *cache.PageCache
}

func NewGroupService(groupRepo repository.GroupRepository, validator *forms.Validator, pages *cache.PageCache) GroupService {
	return &groupService{
		groupRepo: groupRepo,
		validator: validator,
		pages:     pages,
	}
}

func (s *groupService) List(ctx context.Context) ([]models.Group, error) {
	return s.groupRepo.List(ctx)
}

func (s *groupService) Create(ctx context.Context, actor *models.Actor, form *forms.GroupForm) (*models.Group, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("группы создает администратор: %w", models.ErrForbidden)
	}

	if err := s.validator.Validate(form); err != nil {
		return nil, err
	}

	group := &models.Group{
		Title:       form.Title,
		Slug:        form.Slug,
		Description: form.Description,
	}

	if err := s.groupRepo.Create(ctx, group); err != nil {
		if errors.Is(err, models.ErrAlreadyExists) {
			verr := &forms.ValidationError{}
			verr.Add("slug", "Группа с таким названием или slug уже существует.")
			return nil, verr
		}
		return nil, err
	}

	return group, nil
}

// Delete removes the group; its posts stay and lose their group, so cached
// listings are dropped as well.
func (s *groupService) Delete(ctx context.Context, actor *models.Actor, slug string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("группы удаляет администратор: %w", models.ErrForbidden)
	}

	if err := s.groupRepo.DeleteBySlug(ctx, slug); err != nil {
		return err
	}

	s.pages.Purge()
	return nil
}
