package services

import (
	"time"

	"jigz_backend/internal/algorithms"
	"jigz_backend/internal/models"
	"jigz_backend/internal/repositories"
	"jigz_backend/internal/services/dto"

	"gorm.io/gorm"
	"jigz_backend/pkg/apperrors"
)

type ApplicationService struct {
	applicationRepo repositories.ApplicationRepository
	jobRepo         repositories.JobRepository
	coinGateway     CoinGateway
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	coinGateway CoinGateway,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		coinGateway:     coinGateway,
	}
}

// Apply создает отклик. Стоимость: CoinCostApply + coinsBid, списывается
// одним платежом вместе со вставкой отклика. Повторный отклик на то же
// задание запрещен и не тратит монеты.
func (s *ApplicationService) Apply(db *gorm.DB, applicantID string, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	job, err := s.jobRepo.FindByID(db, req.JobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if job.UserID == applicantID {
		return nil, apperrors.ErrInvalidOperation("application", "cannot apply to your own job")
	}
	if job.Status != models.JobStatusOpen {
		return nil, apperrors.ErrJobNotOpen
	}
	if job.ApprovalStatus != models.ApprovalStatusApproved {
		return nil, apperrors.ErrJobNotApproved
	}
	if !job.ExpiresAt.After(time.Now()) {
		return nil, apperrors.ErrJobExpired
	}

	// Проверка до списания; уникальный индекс (job_id, applicant_id)
	// закрывает гонку двух одновременных откликов.
	if _, err := s.applicationRepo.FindByJobAndApplicant(db, req.JobID, applicantID); err == nil {
		return nil, apperrors.ErrAlreadyApplied
	}

	application := &models.Application{
		JobID:       req.JobID,
		ApplicantID: applicantID,
		BidAmount:   req.BidAmount,
		CoinsBid:    req.CoinsBid,
		Message:     req.Message,
		Experience:  req.Experience,
		Status:      models.ApplicationStatusPending,
	}

	cost := models.CoinCostApply + req.CoinsBid
	err = s.coinGateway.Charge(db, applicantID, cost, models.CoinReasonApply, func(tx *gorm.DB) error {
		return s.applicationRepo.Create(tx, application)
	})
	if err != nil {
		return nil, err
	}

	return buildApplicationResponse(application), nil
}

// IncreaseBid доплачивает монеты к существующему отклику. Ставка
// наращивается атомарно вместе со списанием.
func (s *ApplicationService) IncreaseBid(db *gorm.DB, applicationID, applicantID string, req *dto.IncreaseBidRequest) (*dto.ApplicationResponse, error) {
	application, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if application.ApplicantID != applicantID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	job, err := s.jobRepo.FindByID(db, application.JobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if job.Status != models.JobStatusOpen {
		return nil, apperrors.ErrJobNotOpen
	}
	if !job.ExpiresAt.After(time.Now()) {
		return nil, apperrors.ErrJobExpired
	}

	err = s.coinGateway.Charge(db, applicantID, req.AdditionalCoins, models.CoinReasonIncreaseBid, func(tx *gorm.DB) error {
		return s.applicationRepo.IncreaseBid(tx, applicationID, req.AdditionalCoins)
	})
	if err != nil {
		return nil, err
	}

	application.CoinsBid += req.AdditionalCoins
	return buildApplicationResponse(application), nil
}

// GetRankings возвращает отклики задания, упорядоченные по ставке.
// Полный список видят владелец задания и модераторы.
func (s *ApplicationService) GetRankings(db *gorm.DB, jobID, requesterID string, requesterRole models.UserRole) (*dto.ApplicationRankingsResponse, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	isOwner := job.UserID == requesterID
	isStaff := requesterRole == models.UserRoleAdmin || requesterRole == models.UserRoleModerator
	if !isOwner && !isStaff {
		return nil, apperrors.ErrInsufficientPermissions
	}

	applications, err := s.applicationRepo.ListByJob(db, jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ranked := algorithms.RankApplications(applications)

	response := &dto.ApplicationRankingsResponse{
		JobID:        jobID,
		Applications: make([]dto.RankedApplicationResponse, 0, len(ranked)),
		Total:        len(ranked),
	}
	for i := range ranked {
		response.Applications = append(response.Applications, dto.RankedApplicationResponse{
			ApplicationResponse: *buildApplicationResponse(&ranked[i].Application),
			Rank:                ranked[i].Rank,
			IsBidding:           ranked[i].IsBidding,
		})
	}
	return response, nil
}

func (s *ApplicationService) ListMyApplications(db *gorm.DB, applicantID string) ([]dto.ApplicationResponse, error) {
	applications, err := s.applicationRepo.ListByApplicant(db, applicantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		responses = append(responses, *buildApplicationResponse(&applications[i]))
	}
	return responses, nil
}

// UpdateStatus - решение владельца задания по отклику.
func (s *ApplicationService) UpdateStatus(db *gorm.DB, applicationID, requesterID string, status models.ApplicationStatus) error {
	application, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	job, err := s.jobRepo.FindByID(db, application.JobID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if job.UserID != requesterID {
		return apperrors.ErrInsufficientPermissions
	}

	if status != models.ApplicationStatusAccepted && status != models.ApplicationStatusRejected {
		return apperrors.ErrInvalidStatus("application", "status must be accepted or rejected")
	}

	if err := s.applicationRepo.UpdateStatus(db, applicationID, status); err != nil {
		return apperrors.InternalError(err)
	}

	// Принятый отклик переводит задание в работу.
	if status == models.ApplicationStatusAccepted && job.Status == models.JobStatusOpen {
		if err := s.jobRepo.UpdateStatus(db, job.ID, models.JobStatusInProgress); err != nil {
			return apperrors.InternalError(err)
		}
	}
	return nil
}

func buildApplicationResponse(application *models.Application) *dto.ApplicationResponse {
	return &dto.ApplicationResponse{
		ID:          application.ID,
		JobID:       application.JobID,
		ApplicantID: application.ApplicantID,
		BidAmount:   application.BidAmount,
		CoinsBid:    application.CoinsBid,
		Message:     application.Message,
		Experience:  application.Experience,
		Status:      string(application.Status),
		CreatedAt:   application.CreatedAt,
	}
}
