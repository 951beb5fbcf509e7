package service

import (
	"github.com/LogM3/Poster/internal/cache"
	"github.com/LogM3/Poster/internal/config"
	"github.com/LogM3/Poster/internal/forms"
	"github.com/LogM3/Poster/internal/repository"
	"github.com/LogM3/Poster/internal/storage"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Post    PostService
	Comment CommentService
	Follow  FollowService
	Group   GroupService
	About   AboutService

	// Pages holds rendered index pages; every post mutation purges it.
	Pages *cache.PageCache
}

func NewService(rep *repository.Repository, cfg *config.Config, store storage.Storage, pages *cache.PageCache) *Service {
	validator := forms.NewValidator(cfg.MaxUploadSize)
	posts := newPostLister(rep.Post, store, cfg.PostsPerPage)

	return &Service{
		Auth:    NewAuthService(rep.User, validator, cfg),
		User:    NewUserService(rep.User, store, pages),
		Post:    NewPostService(rep.Post, rep.Group, rep.Comment, rep.User, rep.Follow, posts, validator, pages),
		Comment: NewCommentService(rep.Comment, rep.Post, validator),
		Follow:  NewFollowService(rep.Follow, rep.User, posts),
		Group:   NewGroupService(rep.Group, validator, pages),
		About:   NewAboutService(rep.Tables, cfg),
		Pages:   pages,
	}
}
