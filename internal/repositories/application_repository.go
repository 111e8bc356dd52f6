package repositories

import (
	"errors"

	"jigz_backend/internal/models"

	"gorm.io/gorm"
)

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationRepository interface {
	Create(tx *gorm.DB, application *models.Application) error
	FindByID(db *gorm.DB, id string) (*models.Application, error)
	FindByJobAndApplicant(db *gorm.DB, jobID, applicantID string) (*models.Application, error)
	ListByJob(db *gorm.DB, jobID string) ([]models.Application, error)
	ListByApplicant(db *gorm.DB, applicantID string) ([]models.Application, error)
	IncreaseBid(tx *gorm.DB, id string, additionalCoins int) error
	UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus) error
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

func (r *ApplicationRepositoryImpl) Create(tx *gorm.DB, application *models.Application) error {
	return tx.Create(application).Error
}

func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var application models.Application
	err := db.First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindByJobAndApplicant(db *gorm.DB, jobID, applicantID string) (*models.Application, error) {
	var application models.Application
	err := db.Where("job_id = ? AND applicant_id = ?", jobID, applicantID).First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

// ListByJob отдает отклики в хронологическом порядке.
// Ранжирование по ставкам выполняется поверх, в чистой функции.
func (r *ApplicationRepositoryImpl) ListByJob(db *gorm.DB, jobID string) ([]models.Application, error) {
	var applications []models.Application
	err := db.Where("job_id = ?", jobID).Order("created_at ASC").Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) ListByApplicant(db *gorm.DB, applicantID string) ([]models.Application, error) {
	var applications []models.Application
	err := db.Where("applicant_id = ?", applicantID).Order("created_at DESC").Find(&applications).Error
	return applications, err
}

// IncreaseBid атомарно наращивает ставку. Ставка только растет,
// уменьшение не предусмотрено ни одной операцией.
func (r *ApplicationRepositoryImpl) IncreaseBid(tx *gorm.DB, id string, additionalCoins int) error {
	result := tx.Model(&models.Application{}).Where("id = ?", id).
		UpdateColumn("coins_bid", gorm.Expr("coins_bid + ?", additionalCoins))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus) error {
	result := db.Model(&models.Application{}).Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
