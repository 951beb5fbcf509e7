package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/LogM3/Poster/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (post_id, author_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, created
	`

	err := r.db.QueryRowxContext(ctx, query, comment.PostID, comment.AuthorID, comment.Text).
		Scan(&comment.ID, &comment.Created)
	if err != nil {
		if hasPQCode(err, pqForeignKeyViolation) {
			return fmt.Errorf("пост с ID %d %w", comment.PostID, models.ErrNotFound)
		}
		return fmt.Errorf("ошибка при создании комментария: %w", err)
	}

	return nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, c.text, c.created, u.username AS author_username
		FROM comments c
		JOIN users u ON u.user_id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created DESC, c.id DESC
	`

	comments := []models.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	return comments, nil
}
