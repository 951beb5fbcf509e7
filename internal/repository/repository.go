package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/LogM3/Poster/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) ([]string, error)
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, groupID int64) (*models.Group, error)
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	List(ctx context.Context) ([]models.Group, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID int64) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID int64) (string, error)
	Count(ctx context.Context, filter PostFilter) (int, error)
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]models.Post, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
}

type FollowRepository interface {
	Create(ctx context.Context, userID, authorID string) (bool, error)
	Delete(ctx context.Context, userID, authorID string) (bool, error)
	Exists(ctx context.Context, userID, authorID string) (bool, error)
	CountFollowers(ctx context.Context, authorID string) (int, error)
	CountFollowing(ctx context.Context, userID string) (int, error)
}

type TablesRepository interface {
	CountTablesDB(ctx context.Context) (int, error)
}

type Repository struct {
	User    UserRepository
	Group   GroupRepository
	Post    PostRepository
	Comment CommentRepository
	Follow  FollowRepository
	Tables  TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Group:   NewGroupRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Follow:  NewFollowRepository(db),
		Tables:  NewTablesRepository(db),
	}
}

// PostFilter narrows a post listing. Unset fields don't filter; set fields are
// combined with AND.
type PostFilter struct {
	GroupID *int64
	// AuthorID keeps posts written by this user.
	AuthorID *string
	// FollowerID keeps posts written by anyone this user follows.
	FollowerID *string
}

func (f PostFilter) where() (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if f.GroupID != nil {
		args = append(args, *f.GroupID)
		conditions = append(conditions, fmt.Sprintf("p.group_id = $%d", len(args)))
	}
	if f.AuthorID != nil {
		args = append(args, *f.AuthorID)
		conditions = append(conditions, fmt.Sprintf("p.author_id = $%d", len(args)))
	}
	if f.FollowerID != nil {
		args = append(args, *f.FollowerID)
		conditions = append(conditions, fmt.Sprintf("p.author_id IN (SELECT author_id FROM follows WHERE user_id = $%d)", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func hasPQCode(err error, code string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}
