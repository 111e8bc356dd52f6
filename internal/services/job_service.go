package services

import (
	"encoding/json"
	"time"

	"jigz_backend/internal/email"
	"jigz_backend/internal/logger"
	"jigz_backend/internal/models"
	"jigz_backend/internal/repositories"
	"jigz_backend/internal/services/dto"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"jigz_backend/pkg/apperrors"
)

// jobLifetimeDays - срок жизни публикации с момента создания.
const jobLifetimeDays = 30

type JobService struct {
	jobRepo       repositories.JobRepository
	userRepo      repositories.UserRepository
	coinGateway   CoinGateway
	emailProvider email.Provider
}

func NewJobService(
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	coinGateway CoinGateway,
	emailProvider email.Provider,
) *JobService {
	return &JobService{
		jobRepo:       jobRepo,
		userRepo:      userRepo,
		coinGateway:   coinGateway,
		emailProvider: emailProvider,
	}
}

// CreateJob публикует задание. Списание CoinCostPostJob и вставка
// строки происходят в одной транзакции: если вставка не прошла,
// монеты возвращаются откатом.
func (s *JobService) CreateJob(db *gorm.DB, userID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	skillsJSON, err := json.Marshal(req.Skills)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	job := &models.Job{
		UserID:          userID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Location:        req.Location,
		MinBudget:       req.MinBudget,
		MaxBudget:       req.MaxBudget,
		BudgetType:      models.BudgetType(req.BudgetType),
		Currency:        req.Currency,
		ExperienceLevel: req.ExperienceLevel,
		Skills:          datatypes.JSON(skillsJSON),
		Status:          models.JobStatusOpen,
		ApprovalStatus:  models.ApprovalStatusPending,
		ExpiresAt:       time.Now().AddDate(0, 0, jobLifetimeDays),
	}

	err = s.coinGateway.Charge(db, userID, models.CoinCostPostJob, models.CoinReasonPostJob, func(tx *gorm.DB) error {
		return s.jobRepo.Create(tx, job)
	})
	if err != nil {
		return nil, err
	}

	return buildJobResponse(job), nil
}

// GetJob возвращает задание. Владелец и модераторы видят его всегда,
// остальные - только публично видимое; публичный просмотр увеличивает
// счетчик просмотров.
func (s *JobService) GetJob(db *gorm.DB, jobID string, requesterID string, requesterRole models.UserRole) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	isOwner := requesterID != "" && requesterID == job.UserID
	isStaff := requesterRole == models.UserRoleAdmin || requesterRole == models.UserRoleModerator

	if !isOwner && !isStaff {
		if !job.IsSearchable(time.Now()) {
			return nil, apperrors.ErrNotFound(repositories.ErrJobNotFound)
		}
		if err := s.jobRepo.IncrementViews(db, jobID); err != nil {
			logger.WithError(err).Warn("failed to increment job views", "job_id", jobID)
		} else {
			job.Views++
		}
	}

	return buildJobResponse(job), nil
}

// UpdateJob - платное редактирование владельцем.
func (s *JobService) UpdateJob(db *gorm.DB, jobID, userID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if job.UserID != userID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if job.Status != models.JobStatusOpen {
		return nil, apperrors.ErrJobNotOpen
	}

	applyJobUpdates(job, req)
	if job.MaxBudget < job.MinBudget {
		return nil, apperrors.NewBadRequestError("maximum budget cannot be less than minimum budget")
	}

	err = s.coinGateway.Charge(db, userID, models.CoinCostEditJob, models.CoinReasonEditJob, func(tx *gorm.DB) error {
		return s.jobRepo.Update(tx, job)
	})
	if err != nil {
		return nil, err
	}

	return buildJobResponse(job), nil
}

// ExtendJob продлевает публикацию на ExtendJobDays за CoinCostExtendJob.
// Продление отсчитывается от текущего expiresAt, если задание еще живо,
// иначе от текущего момента.
func (s *JobService) ExtendJob(db *gorm.DB, jobID, userID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if job.UserID != userID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if job.Status != models.JobStatusOpen {
		return nil, apperrors.ErrJobNotOpen
	}

	now := time.Now()
	base := job.ExpiresAt
	if base.Before(now) {
		base = now
	}
	until := base.AddDate(0, 0, models.ExtendJobDays)

	err = s.coinGateway.Charge(db, userID, models.CoinCostExtendJob, models.CoinReasonExtendJob, func(tx *gorm.DB) error {
		return s.jobRepo.ExtendExpiry(tx, jobID, until)
	})
	if err != nil {
		return nil, err
	}

	job.ExpiresAt = until
	return buildJobResponse(job), nil
}

// CompleteJob переводит задание в completed. Только владелец.
func (s *JobService) CompleteJob(db *gorm.DB, jobID, userID string) error {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if job.UserID != userID {
		return apperrors.ErrInsufficientPermissions
	}
	if job.Status == models.JobStatusCompleted {
		return apperrors.ErrInvalidStatus("job", "job is already completed")
	}

	return s.jobRepo.UpdateStatus(db, jobID, models.JobStatusCompleted)
}

func (s *JobService) DeleteJob(db *gorm.DB, jobID, userID string, role models.UserRole) error {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if job.UserID != userID && role != models.UserRoleAdmin {
		return apperrors.ErrInsufficientPermissions
	}

	return s.jobRepo.Delete(db, jobID)
}

func (s *JobService) ListMyJobs(db *gorm.DB, userID string) (*dto.JobListResponse, error) {
	jobs, err := s.jobRepo.ListByOwner(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildJobListResponse(jobs), nil
}

// Moderation

func (s *JobService) ListPendingJobs(db *gorm.DB, limit, offset int) (*dto.JobListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	jobs, err := s.jobRepo.ListPendingApproval(db, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildJobListResponse(jobs), nil
}

func (s *JobService) ApproveJob(db *gorm.DB, jobID string) error {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if err := s.jobRepo.UpdateApprovalStatus(db, jobID, models.ApprovalStatusApproved); err != nil {
		return apperrors.InternalError(err)
	}

	s.notifyOwner(db, job, "Задание одобрено", "job_approved", email.TemplateData{"Title": job.Title})
	return nil
}

func (s *JobService) RejectJob(db *gorm.DB, jobID string, req *dto.RejectJobRequest) error {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if err := s.jobRepo.UpdateApprovalStatus(db, jobID, models.ApprovalStatusRejected); err != nil {
		return apperrors.InternalError(err)
	}

	s.notifyOwner(db, job, "Задание отклонено", "job_rejected", email.TemplateData{
		"Title":  job.Title,
		"Reason": req.Reason,
	})
	return nil
}

func (s *JobService) notifyOwner(db *gorm.DB, job *models.Job, subject, templateName string, data email.TemplateData) {
	owner, err := s.userRepo.FindByID(db, job.UserID)
	if err != nil {
		logger.WithError(err).Warn("failed to load job owner for notification", "job_id", job.ID)
		return
	}

	go func() {
		if err := s.emailProvider.SendTemplate([]string{owner.Email}, subject, templateName, data); err != nil {
			logger.WithError(err).Warn("failed to send job notification", "job_id", job.ID)
		}
	}()
}

func applyJobUpdates(job *models.Job, req *dto.UpdateJobRequest) {
	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Category != nil {
		job.Category = *req.Category
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.MinBudget != nil {
		job.MinBudget = *req.MinBudget
	}
	if req.MaxBudget != nil {
		job.MaxBudget = *req.MaxBudget
	}
	if req.ExperienceLevel != nil {
		job.ExperienceLevel = *req.ExperienceLevel
	}
	if req.Skills != nil {
		if skillsJSON, err := json.Marshal(req.Skills); err == nil {
			job.Skills = datatypes.JSON(skillsJSON)
		}
	}
}

func buildJobResponse(job *models.Job) *dto.JobResponse {
	var skills []string
	if len(job.Skills) > 0 {
		_ = json.Unmarshal(job.Skills, &skills)
	}

	return &dto.JobResponse{
		ID:              job.ID,
		UserID:          job.UserID,
		Title:           job.Title,
		Description:     job.Description,
		Category:        job.Category,
		Location:        job.Location,
		MinBudget:       job.MinBudget,
		MaxBudget:       job.MaxBudget,
		BudgetType:      string(job.BudgetType),
		Currency:        job.Currency,
		ExperienceLevel: job.ExperienceLevel,
		Skills:          skills,
		Status:          string(job.Status),
		ApprovalStatus:  string(job.ApprovalStatus),
		Views:           job.Views,
		ExpiresAt:       job.ExpiresAt,
		CreatedAt:       job.CreatedAt,
		UpdatedAt:       job.UpdatedAt,
	}
}

func buildJobListResponse(jobs []models.Job) *dto.JobListResponse {
	response := &dto.JobListResponse{Jobs: make([]dto.JobResponse, 0, len(jobs))}
	for i := range jobs {
		response.Jobs = append(response.Jobs, *buildJobResponse(&jobs[i]))
	}
	return response
}
