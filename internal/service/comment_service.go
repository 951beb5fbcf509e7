package service

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/LogM3/Poster/internal/forms"
	"github.com/LogM3/Poster/internal/models"
	"github.com/LogM3/Poster/internal/repository"
)

type CommentService interface {
	AddComment(ctx context.Context, actor *models.Actor, postID int64, form *forms.CommentForm) (*models.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	validator   *forms.Validator
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, validator *forms.Validator) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		validator:   validator,
	}
}

func (s *commentService) AddComment(ctx context.Context, actor *models.Actor, postID int64, form *forms.CommentForm) (*models.Comment, error) {
	if actor == nil {
		return nil, fmt.Errorf("комментировать могут только авторизованные пользователи: %w", models.ErrForbidden)
	}

	// unknown post is a 404 even when the form is empty
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(form); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:         postID,
		AuthorID:       actor.UserID,
		AuthorUsername: actor.Username,
		Text:           form.Text,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.Published = humanize.Time(comment.Created)

	return comment, nil
}

func decorateComments(comments []models.Comment) {
	for i := range comments {
		comments[i].Published = humanize.Time(comments[i].Created)
	}
}
