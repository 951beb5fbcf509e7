package handlers

import (
	"github.com/LogM3/Poster/internal/cache"
	"github.com/LogM3/Poster/internal/config"
	"github.com/LogM3/Poster/internal/service"
)

// HealthChecker reports whether the database answers.
type HealthChecker interface {
	HealthCheck() error
}

type Handlers struct {
	AuthService    service.AuthService
	UserService    service.UserService
	PostService    service.PostService
	CommentService service.CommentService
	FollowService  service.FollowService
	GroupService   service.GroupService
	AboutService   service.AboutService
	Pages          *cache.PageCache
	DB             HealthChecker
	Cfg            *config.Config
}

func NewHandlers(service *service.Service, db HealthChecker, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    service.Auth,
		UserService:    service.User,
		PostService:    service.Post,
		CommentService: service.Comment,
		FollowService:  service.Follow,
		GroupService:   service.Group,
		AboutService:   service.About,
		Pages:          service.Pages,
		DB:             db,
		Cfg:            config,
	}
}
