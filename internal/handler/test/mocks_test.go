package test

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"github.com/LogM3/Poster/internal/forms"
	"github.com/LogM3/Poster/internal/models"
	"github.com/LogM3/Poster/internal/paginator"
	"github.com/LogM3/Poster/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, form *forms.SignupForm) (*models.User, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, form *forms.LoginForm) (*models.User, string, string, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}

func (m *MockAuthService) ActorFromToken(tokenString string) (*models.Actor, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Actor), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, actor *models.Actor, username string) error {
	args := m.Called(ctx, actor, username)
	return args.Error(0)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) Index(ctx context.Context, rawPage string) (*paginator.Page[models.Post], error) {
	args := m.Called(ctx, rawPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paginator.Page[models.Post]), args.Error(1)
}

func (m *MockPostService) GroupPosts(ctx context.Context, slug, rawPage string) (*service.GroupPage, error) {
	args := m.Called(ctx, slug, rawPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GroupPage), args.Error(1)
}

func (m *MockPostService) Profile(ctx context.Context, actor *models.Actor, username, rawPage string) (*service.ProfilePage, error) {
	args := m.Called(ctx, actor, username, rawPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProfilePage), args.Error(1)
}

func (m *MockPostService) Detail(ctx context.Context, postID int64) (*service.PostDetail, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostDetail), args.Error(1)
}

func (m *MockPostService) PostForEdit(ctx context.Context, actor *models.Actor, postID int64) (*models.Post, error) {
	args := m.Called(ctx, actor, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) CreatePost(ctx context.Context, actor *models.Actor, form *forms.PostForm) (*models.Post, error) {
	args := m.Called(ctx, actor, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) EditPost(ctx context.Context, actor *models.Actor, postID int64, form *forms.PostForm) (*models.Post, error) {
	args := m.Called(ctx, actor, postID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, actor *models.Actor, postID int64) (*models.Post, error) {
	args := m.Called(ctx, actor, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) AddComment(ctx context.Context, actor *models.Actor, postID int64, form *forms.CommentForm) (*models.Comment, error) {
	args := m.Called(ctx, actor, postID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

type MockFollowService struct {
	mock.Mock
}

func (m *MockFollowService) Follow(ctx context.Context, actor *models.Actor, username string) error {
	args := m.Called(ctx, actor, username)
	return args.Error(0)
}

func (m *MockFollowService) Unfollow(ctx context.Context, actor *models.Actor, username string) error {
	args := m.Called(ctx, actor, username)
	return args.Error(0)
}

func (m *MockFollowService) Feed(ctx context.Context, actor *models.Actor, rawPage string) (*paginator.Page[models.Post], error) {
	args := m.Called(ctx, actor, rawPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paginator.Page[models.Post]), args.Error(1)
}

type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) List(ctx context.Context) ([]models.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Group), args.Error(1)
}

func (m *MockGroupService) Create(ctx context.Context, actor *models.Actor, form *forms.GroupForm) (*models.Group, error) {
	args := m.Called(ctx, actor, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupService) Delete(ctx context.Context, actor *models.Actor, slug string) error {
	args := m.Called(ctx, actor, slug)
	return args.Error(0)
}

type MockAboutService struct {
	mock.Mock
}

func (m *MockAboutService) Tech(ctx context.Context) (*service.TechInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TechInfo), args.Error(1)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck() error {
	args := m.Called()
	return args.Error(0)
}
