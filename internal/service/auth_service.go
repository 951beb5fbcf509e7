package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/LogM3/Poster/internal/config"
	"github.com/LogM3/Poster/internal/forms"
	"github.com/LogM3/Poster/internal/models"
	"github.com/LogM3/Poster/internal/repository"
)

const usernameTaken = "Пользователь с таким именем уже существует."

type AuthService interface {
	Register(ctx context.Context, form *forms.SignupForm) (*models.User, error)
	Login(ctx context.Context, form *forms.LoginForm) (*models.User, string, string, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	ActorFromToken(tokenString string) (*models.Actor, error)
}

type authService struct {
	userRepo  repository.UserRepository
	validator *forms.Validator
	cfg       *config.Config
}

func NewAuthService(userRepo repository.UserRepository, validator *forms.Validator, cfg *config.Config) AuthService {
	return &authService{
		userRepo:  userRepo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *authService) Register(ctx context.Context, form *forms.SignupForm) (*models.User, error) {
	if err := s.validator.Validate(form); err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.GetUserByUsername(ctx, form.Username)
	if err == nil && existingUser != nil {
		return nil, usernameTakenError()
	}
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	refreshToken, refreshTokenExpiry := s.generateRefreshToken()

	user := &models.User{
		Username:               form.Username,
		Email:                  form.Email,
		FirstName:              form.FirstName,
		LastName:               form.LastName,
		Role:                   models.RoleUser,
		RefreshToken:           refreshToken,
		RefreshTokenExpiryTime: refreshTokenExpiry,
	}
	if slices.Contains(s.cfg.AdminUsernames, form.Username) {
		user.Role = models.RoleAdmin
	}

	err = s.userRepo.CreateUser(ctx, user, form.Password)
	if err != nil {
		if errors.Is(err, models.ErrAlreadyExists) {
			return nil, usernameTakenError()
		}
		return nil, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, form *forms.LoginForm) (*models.User, string, string, error) {
	if err := s.validator.Validate(form); err != nil {
		return nil, "", "", err
	}

	user, err := s.userRepo.VerifyPassword(ctx, form.Username, form.Password)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка аутентификации: %w", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetUserByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, "", "", fmt.Errorf("недействительный refresh token: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// issueTokens signs a new access token and rotates the stored refresh token.
func (s *authService) issueTokens(ctx context.Context, user *models.User) (*models.User, string, string, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка генерации access token: %w", err)
	}

	refreshToken, refreshTokenExpiry := s.generateRefreshToken()

	err = s.userRepo.UpdateRefreshToken(ctx, user.UserID, refreshToken, refreshTokenExpiry)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка сохранения refresh token: %w", err)
	}
	user.RefreshToken = refreshToken
	user.RefreshTokenExpiryTime = refreshTokenExpiry

	return user, accessToken, refreshToken, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.UserID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      now.Add(s.cfg.AccessTokenDuration).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

func (s *authService) generateRefreshToken() (string, time.Time) {
	return uuid.New().String(), time.Now().Add(s.cfg.RefreshTokenDuration)
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга токена: %v: %w", err, models.ErrInvalidToken)
	}

	if !token.Valid {
		return nil, models.ErrInvalidToken
	}

	return token, nil
}

func (s *authService) ActorFromToken(tokenString string) (*models.Actor, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("неверный формат claims: %w", models.ErrInvalidToken)
	}

	userID, _ := claims["user_id"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || username == "" {
		return nil, fmt.Errorf("в токене нет пользователя: %w", models.ErrInvalidToken)
	}

	return &models.Actor{UserID: userID, Username: username, Role: role}, nil
}

func usernameTakenError() error {
	verr := &forms.ValidationError{}
	verr.Add("username", usernameTaken)
	return verr
}
