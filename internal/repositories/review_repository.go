package repositories

import (
	"errors"

	"jigz_backend/internal/models"

	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	FindByID(db *gorm.DB, id string) (*models.Review, error)
	FindByJobAndReviewer(db *gorm.DB, jobID, reviewerID string) (*models.Review, error)
	ListByReviewee(db *gorm.DB, revieweeID string, limit, offset int) ([]models.Review, int64, error)
	AverageRating(db *gorm.DB, revieweeID string) (float64, int64, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) Create(db *gorm.DB, review *models.Review) error {
	return db.Create(review).Error
}

func (r *ReviewRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Review, error) {
	var review models.Review
	err := db.First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindByJobAndReviewer(db *gorm.DB, jobID, reviewerID string) (*models.Review, error) {
	var review models.Review
	err := db.Where("job_id = ? AND reviewer_id = ?", jobID, reviewerID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) ListByReviewee(db *gorm.DB, revieweeID string, limit, offset int) ([]models.Review, int64, error) {
	query := db.Model(&models.Review{}).Where("reviewee_id = ?", revieweeID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reviews).Error
	return reviews, total, err
}

// AverageRating считает средний рейтинг и количество отзывов одним запросом.
func (r *ReviewRepositoryImpl) AverageRating(db *gorm.DB, revieweeID string) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	err := db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("reviewee_id = ?", revieweeID).
		Scan(&result).Error
	return result.Avg, result.Count, err
}
