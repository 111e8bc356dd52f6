package services

import (
	"jigz_backend/internal/models"
	"jigz_backend/internal/repositories"
	"jigz_backend/internal/services/dto"

	"gorm.io/gorm"
	"jigz_backend/pkg/apperrors"
)

type UserService struct {
	userRepo        repositories.UserRepository
	reviewRepo      repositories.ReviewRepository
	endorsementRepo repositories.EndorsementRepository
	coinGateway     CoinGateway
}

func NewUserService(
	userRepo repositories.UserRepository,
	reviewRepo repositories.ReviewRepository,
	endorsementRepo repositories.EndorsementRepository,
	coinGateway CoinGateway,
) *UserService {
	return &UserService{
		userRepo:        userRepo,
		reviewRepo:      reviewRepo,
		endorsementRepo: endorsementRepo,
		coinGateway:     coinGateway,
	}
}

// GetProfile собирает публичный профиль: рейтинг и подтверждения навыков.
func (s *UserService) GetProfile(db *gorm.DB, userID string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	avg, count, err := s.reviewRepo.AverageRating(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	endorsements, err := s.endorsementRepo.CountBySkill(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.UserProfileResponse{
		UserResponse: *buildUserResponse(user),
		Rating:       avg,
		ReviewCount:  count,
		Endorsements: endorsements,
	}, nil
}

// EndorseSkill - платное подтверждение навыка другого пользователя.
// Стоимость списывается в той же транзакции, что и создание записи.
func (s *UserService) EndorseSkill(db *gorm.DB, endorserID, userID string, req *dto.EndorseSkillRequest) (*dto.EndorsementResponse, error) {
	if endorserID == userID {
		return nil, apperrors.ErrInvalidOperation("endorsement", "cannot endorse your own skill")
	}

	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.endorsementRepo.Find(db, endorserID, userID, req.Skill); err == nil {
		return nil, apperrors.ErrConflict(nil, "endorsement", "skill already endorsed")
	}

	endorsement := &models.SkillEndorsement{
		EndorserID: endorserID,
		UserID:     userID,
		Skill:      req.Skill,
	}

	err := s.coinGateway.Charge(db, endorserID, models.CoinCostEndorseSkill, models.CoinReasonEndorseSkill, func(tx *gorm.DB) error {
		return s.endorsementRepo.Create(tx, endorsement)
	})
	if err != nil {
		return nil, err
	}

	return &dto.EndorsementResponse{
		ID:         endorsement.ID,
		EndorserID: endorsement.EndorserID,
		UserID:     endorsement.UserID,
		Skill:      endorsement.Skill,
		CreatedAt:  endorsement.CreatedAt,
	}, nil
}

// Admin operations

func (s *UserService) ListUsers(db *gorm.DB, limit, offset int) (*dto.UserListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.userRepo.FindAll(db, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	total, err := s.userRepo.CountAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	response := &dto.UserListResponse{
		Users: make([]dto.UserResponse, 0, len(users)),
		Total: total,
	}
	for i := range users {
		response.Users = append(response.Users, *buildUserResponse(&users[i]))
	}
	return response, nil
}

func (s *UserService) UpdateStatus(db *gorm.DB, userID string, req *dto.UpdateUserStatusRequest) error {
	if err := s.userRepo.UpdateStatus(db, userID, models.UserStatus(req.Status)); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserService) DeleteUser(db *gorm.DB, userID string) error {
	if err := s.userRepo.Delete(db, userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
