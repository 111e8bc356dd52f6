package services

import (
	"time"

	"jigz_backend/internal/auth"
	"jigz_backend/internal/email"
	"jigz_backend/internal/logger"
	"jigz_backend/internal/models"
	"jigz_backend/internal/repositories"
	"jigz_backend/internal/services/dto"

	"gorm.io/gorm"
	"jigz_backend/pkg/apperrors"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService struct {
	userRepo      repositories.UserRepository
	emailProvider email.Provider
}

func NewAuthService(userRepo repositories.UserRepository, emailProvider email.Provider) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		emailProvider: emailProvider,
	}
}

// Register создает пользователя с ролью user и стартовым балансом.
func (s *AuthService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Username:      req.Username,
		Email:         req.Email,
		PasswordHash:  hash,
		Role:          models.UserRoleUser,
		Status:        models.UserStatusActive,
		Coins:         BaselineFor(models.UserRoleUser),
		LastCoinReset: time.Now(),
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			if _, emailErr := s.userRepo.FindByEmail(db, req.Email); emailErr == nil {
				return nil, apperrors.ErrEmailAlreadyExists
			}
			return nil, apperrors.ErrUsernameAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	// Письмо не должно блокировать регистрацию.
	go func() {
		if err := s.emailProvider.SendWelcome(user.Email, user.Username); err != nil {
			logger.WithError(err).Warn("failed to send welcome email", "user_id", user.ID)
		}
	}()

	return s.issueTokens(db, user)
}

func (s *AuthService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status != models.UserStatusActive {
		return nil, apperrors.ErrUserSuspended
	}

	return s.issueTokens(db, user)
}

func (s *AuthService) Refresh(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(db, refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = s.userRepo.DeleteRefreshToken(db, refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if user.Status != models.UserStatusActive {
		return nil, apperrors.ErrUserSuspended
	}

	// Ротация: старый refresh-токен аннулируется.
	if err := s.userRepo.DeleteRefreshToken(db, refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(db, user)
}

func (s *AuthService) Logout(db *gorm.DB, refreshToken string) error {
	if err := s.userRepo.DeleteRefreshToken(db, refreshToken); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthService) issueTokens(db *gorm.DB, user *models.User) (*dto.AuthResponse, error) {
	accessToken, _, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken := auth.GenerateRefreshToken()
	if err := s.userRepo.CreateRefreshToken(db, &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         buildUserResponse(user),
	}, nil
}

func buildUserResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		Status:    string(user.Status),
		Coins:     user.Coins,
		CreatedAt: user.CreatedAt,
	}
}
