package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/LogM3/Poster/internal/models"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create adds the user -> author edge and reports whether a new row was
// written. An existing edge is left as is.
func (r *followRepository) Create(ctx context.Context, userID, authorID string) (bool, error) {
	query := `
		INSERT INTO follows (user_id, author_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, author_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, userID, authorID)
	if err != nil {
		if hasPQCode(err, pqForeignKeyViolation) {
			return false, fmt.Errorf("пользователь %s или автор %s %w", userID, authorID, models.ErrNotFound)
		}
		return false, fmt.Errorf("ошибка при создании подписки: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке добавленных строк: %w", err)
	}

	return rowsAffected > 0, nil
}

// Delete removes the edge if present and reports whether it existed.
func (r *followRepository) Delete(ctx context.Context, userID, authorID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM follows WHERE user_id = $1 AND author_id = $2`, userID, authorID)
	if err != nil {
		return false, fmt.Errorf("ошибка при удалении подписки: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *followRepository) Exists(ctx context.Context, userID, authorID string) (bool, error) {
	var exists bool

	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM follows WHERE user_id = $1 AND author_id = $2)`, userID, authorID)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке подписки: %w", err)
	}

	return exists, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, authorID string) (int, error) {
	var count int

	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM follows WHERE author_id = $1`, authorID); err != nil {
		return 0, fmt.Errorf("ошибка при подсчете подписчиков: %w", err)
	}

	return count, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, userID string) (int, error) {
	var count int

	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM follows WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("ошибка при подсчете подписок: %w", err)
	}

	return count, nil
}
