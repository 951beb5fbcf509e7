package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/LogM3/Poster/internal/models"
)

const (
	postColumns = `p.id, p.text, p.pub_date, p.author_id, p.group_id, p.image,
		u.username AS author_username, g.title AS group_title, g.slug AS group_slug`
	postFrom = `FROM posts p
		JOIN users u ON u.user_id = p.author_id
		LEFT JOIN post_groups g ON g.id = p.group_id`
)

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

// Create inserts the post; id and pub_date come back from the database.
func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (text, author_id, group_id, image)
		VALUES ($1, $2, $3, $4)
		RETURNING id, pub_date
	`

	err := r.DB.QueryRowxContext(ctx, query, post.Text, post.AuthorID, post.GroupID, post.Image).
		Scan(&post.ID, &post.PubDate)
	if err != nil {
		if hasPQCode(err, pqForeignKeyViolation) {
			return fmt.Errorf("автор или группа поста %w", models.ErrNotFound)
		}
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` ` + postFrom + ` WHERE p.id = $1`

	var post models.Post
	err := r.DB.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %d %w", postID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

// Update writes the editable fields. pub_date and author are never touched.
func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			text = $1,
			group_id = $2,
			image = $3
		WHERE id = $4
	`

	result, err := r.DB.ExecContext(ctx, query, post.Text, post.GroupID, post.Image, post.ID)
	if err != nil {
		if hasPQCode(err, pqForeignKeyViolation) {
			return fmt.Errorf("группа поста %w", models.ErrNotFound)
		}
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %d %w", post.ID, models.ErrNotFound)
	}

	return nil
}

// Delete removes the post (comments go with it) and returns its image object name.
func (r *PostRepositoryImpl) Delete(ctx context.Context, postID int64) (string, error) {
	query := `DELETE FROM posts WHERE id = $1 RETURNING image`

	var image string
	err := r.DB.GetContext(ctx, &image, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("пост с ID %d %w", postID, models.ErrNotFound)
		}
		return "", fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	return image, nil
}

func (r *PostRepositoryImpl) Count(ctx context.Context, filter PostFilter) (int, error) {
	where, args := filter.where()
	query := `SELECT COUNT(*) FROM posts p` + where

	var count int
	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("ошибка при подсчете постов: %w", err)
	}

	return count, nil
}

// List returns one window of the filtered posts, newest first.
func (r *PostRepositoryImpl) List(ctx context.Context, filter PostFilter, limit, offset int) ([]models.Post, error) {
	where, args := filter.where()
	query := `SELECT ` + postColumns + ` ` + postFrom + where +
		fmt.Sprintf(` ORDER BY p.pub_date DESC, p.id DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	posts := []models.Post{}
	if err := r.DB.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	return posts, nil
}
