package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/LogM3/Poster/internal/database"
	"github.com/LogM3/Poster/internal/models"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	// create password hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	user.UserID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.DateJoined.IsZero() {
		user.DateJoined = time.Now()
	}

	query := `
		INSERT INTO users (user_id, username, email, first_name, last_name, password_hash, role, refresh_token, refresh_token_expiry_time, date_joined)
		VALUES (:user_id, :username, :email, :first_name, :last_name, :password_hash, :role, :refresh_token, :refresh_token_expiry_time, :date_joined)
	`

	_, err = r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if hasPQCode(err, pqUniqueViolation) {
			return fmt.Errorf("пользователь %s %w", user.Username, models.ErrAlreadyExists)
		}
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с ID %s %w", userID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE username = $1`

	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пользователь %s %w", username, models.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по имени: %w", err)
	}

	return &user, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, username, password string) (*models.User, error) {
	user, err := r.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	// checking that the password hash is the same
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return user, nil
}

// DeleteUser removes the user together with their posts, comments and follow
// edges, and returns the image object names of the removed posts.
func (r *userRepository) DeleteUser(ctx context.Context, userID string) ([]string, error) {
	var images []string

	err := database.WithTx(ctx, r.db, "delete user", func(tx *sqlx.Tx) error {
		err := tx.SelectContext(ctx, &images, `SELECT image FROM posts WHERE author_id = $1 AND image <> ''`, userID)
		if err != nil {
			return fmt.Errorf("ошибка при получении изображений пользователя: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
		if err != nil {
			return fmt.Errorf("ошибка при удалении пользователя: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
		}

		if rowsAffected == 0 {
			return fmt.Errorf("пользователь с ID %s %w", userID, models.ErrNotFound)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return images, nil
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	query := `
		UPDATE users
		SET refresh_token = $1, refresh_token_expiry_time = $2
		WHERE user_id = $3
	`

	_, err := r.db.ExecContext(ctx, query, refreshToken, expiryTime, userID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении refresh token: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	var user models.User

	query := `
		SELECT * FROM users
		WHERE refresh_token = $1
		AND refresh_token_expiry_time > CURRENT_TIMESTAMP
	`

	err := r.db.GetContext(ctx, &user, query, refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("refresh token просрочен: %w", models.ErrInvalidToken)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по refresh token: %w", err)
	}

	return &user, nil
}
