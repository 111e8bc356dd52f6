package services

import (
	"math"

	"jigz_backend/internal/models"
	"jigz_backend/internal/repositories"
	"jigz_backend/internal/services/dto"

	"gorm.io/gorm"
	"jigz_backend/pkg/apperrors"
)

type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	jobRepo    repositories.JobRepository
	userRepo   repositories.UserRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		jobRepo:    jobRepo,
		userRepo:   userRepo,
	}
}

// CreateReview оставляет отзыв по завершенному заданию. Один отзыв
// на пару (задание, автор); client_to_worker усредняет три под-оценки.
func (s *ReviewService) CreateReview(db *gorm.DB, reviewerID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if reviewerID == req.RevieweeID {
		return nil, apperrors.ErrInvalidOperation("review", "cannot review yourself")
	}

	job, err := s.jobRepo.FindByID(db, req.JobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if job.Status != models.JobStatusCompleted {
		return nil, apperrors.ErrJobNotCompleted
	}

	kind := models.ReviewKind(req.Kind)
	if kind == models.ReviewKindClientToWorker && job.UserID != reviewerID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if kind == models.ReviewKindWorkerToClient && job.UserID != req.RevieweeID {
		return nil, apperrors.ErrInvalidOperation("review", "reviewee is not the job owner")
	}

	if _, err := s.reviewRepo.FindByJobAndReviewer(db, req.JobID, reviewerID); err == nil {
		return nil, apperrors.ErrReviewAlreadyLeft
	}

	rating, err := computeRating(kind, req)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		JobID:               req.JobID,
		ReviewerID:          reviewerID,
		RevieweeID:          req.RevieweeID,
		Kind:                kind,
		QualityRating:       req.QualityRating,
		CommunicationRating: req.CommunicationRating,
		TimelinessRating:    req.TimelinessRating,
		Rating:              rating,
		Comment:             req.Comment,
	}

	if err := s.reviewRepo.Create(db, review); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildReviewResponse(review), nil
}

func (s *ReviewService) ListUserReviews(db *gorm.DB, userID string, limit, offset int) (*dto.ReviewListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	reviews, total, err := s.reviewRepo.ListByReviewee(db, userID, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	avg, _, err := s.reviewRepo.AverageRating(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	response := &dto.ReviewListResponse{
		Reviews:       make([]dto.ReviewResponse, 0, len(reviews)),
		Total:         total,
		AverageRating: avg,
	}
	for i := range reviews {
		response.Reviews = append(response.Reviews, *buildReviewResponse(&reviews[i]))
	}
	return response, nil
}

// computeRating: заказчик оценивает исполнителя тремя под-оценками,
// итог - их среднее; исполнитель ставит заказчику одну общую оценку.
func computeRating(kind models.ReviewKind, req *dto.CreateReviewRequest) (float64, error) {
	if kind == models.ReviewKindClientToWorker {
		if req.QualityRating == nil || req.CommunicationRating == nil || req.TimelinessRating == nil {
			return 0, apperrors.NewBadRequestError("quality, communication and timeliness ratings are required")
		}
		sum := *req.QualityRating + *req.CommunicationRating + *req.TimelinessRating
		return math.Round(float64(sum)/3*100) / 100, nil
	}

	if req.Rating == nil {
		return 0, apperrors.NewBadRequestError("rating is required")
	}
	return float64(*req.Rating), nil
}

func buildReviewResponse(review *models.Review) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:                  review.ID,
		JobID:               review.JobID,
		ReviewerID:          review.ReviewerID,
		RevieweeID:          review.RevieweeID,
		Kind:                string(review.Kind),
		QualityRating:       review.QualityRating,
		CommunicationRating: review.CommunicationRating,
		TimelinessRating:    review.TimelinessRating,
		Rating:              review.Rating,
		Comment:             review.Comment,
		CreatedAt:           review.CreatedAt,
	}
}
