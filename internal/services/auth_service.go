// internal/services/auth_service.go
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/fastpurchase/backend/internal/config"
	"github.com/fastpurchase/backend/internal/models"
	"github.com/fastpurchase/backend/internal/utils"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strong_password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
	}
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError("Validation failed", utils.GetValidationErrors(err)...)
	}

	// Check duplicates before touching the row; the unique indexes are the
	// backstop for races.
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, NewInternalError(err, "An error occurred during registration")
	}
	if count > 0 {
		return nil, NewValidationError("Registration failed", "Email is already registered")
	}

	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, NewInternalError(err, "An error occurred during registration")
	}
	if count > 0 {
		return nil, NewValidationError("Registration failed", "Username is already taken")
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     models.UserRoleUser,
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, NewInternalError(err, "An error occurred during registration")
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, NewInternalError(err, "An error occurred during registration")
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError("Validation failed", utils.GetValidationErrors(err)...)
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewUnauthorizedError("Authentication failed", "Invalid credentials")
		}
		return nil, NewInternalError(err, "An error occurred during login")
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, NewUnauthorizedError("Authentication failed", "Invalid credentials")
	}

	token, err := utils.GenerateJWT(user.ID, user.Username, string(user.Role), s.cfg.JWT.TokenTTL)
	if err != nil {
		return nil, NewInternalError(err, "An error occurred during login")
	}

	return &LoginResult{
		Token: token,
		User:  &user,
	}, nil
}
