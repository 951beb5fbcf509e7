package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/LogM3/Poster/internal/models"
)

type groupRepository struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	query := `
		INSERT INTO post_groups (title, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.GetContext(ctx, &group.ID, query, group.Title, group.Slug, group.Description)
	if err != nil {
		if hasPQCode(err, pqUniqueViolation) {
			return fmt.Errorf("группа %s %w", group.Slug, models.ErrAlreadyExists)
		}
		return fmt.Errorf("ошибка при создании группы: %w", err)
	}

	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, groupID int64) (*models.Group, error) {
	var group models.Group

	err := r.db.GetContext(ctx, &group, `SELECT * FROM post_groups WHERE id = $1`, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("группа с ID %d %w", groupID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении группы: %w", err)
	}

	return &group, nil
}

func (r *groupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group

	err := r.db.GetContext(ctx, &group, `SELECT * FROM post_groups WHERE slug = $1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("группа %s %w", slug, models.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении группы: %w", err)
	}

	return &group, nil
}

func (r *groupRepository) List(ctx context.Context) ([]models.Group, error) {
	groups := []models.Group{}

	if err := r.db.SelectContext(ctx, &groups, `SELECT * FROM post_groups ORDER BY title`); err != nil {
		return nil, fmt.Errorf("ошибка при получении списка групп: %w", err)
	}

	return groups, nil
}

// DeleteBySlug removes the group. Its posts stay, with group_id set to NULL.
func (r *groupRepository) DeleteBySlug(ctx context.Context, slug string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM post_groups WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("ошибка при удалении группы: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("группа %s %w", slug, models.ErrNotFound)
	}

	return nil
}
