package repositories

import (
	"errors"
	"time"

	"jigz_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrServiceNotFound        = errors.New("service not found")
	ErrServiceRequestNotFound = errors.New("service request not found")
)

type ServiceRepository interface {
	Create(tx *gorm.DB, service *models.Service) error
	FindByID(db *gorm.DB, id string) (*models.Service, error)
	Update(db *gorm.DB, service *models.Service) error
	ListByOwner(db *gorm.DB, userID string) ([]models.Service, error)
	ListActive(db *gorm.DB, category string, limit, offset int) ([]models.Service, int64, error)
	UpdateApprovalStatus(db *gorm.DB, serviceID string, status models.ApprovalStatus) error

	CreateRequest(db *gorm.DB, request *models.ServiceRequest) error
	FindRequest(db *gorm.DB, serviceID, requesterID string) (*models.ServiceRequest, error)
	ListRequestsByService(db *gorm.DB, serviceID string) ([]models.ServiceRequest, error)
}

type ServiceRepositoryImpl struct{}

func NewServiceRepository() ServiceRepository {
	return &ServiceRepositoryImpl{}
}

func (r *ServiceRepositoryImpl) Create(tx *gorm.DB, service *models.Service) error {
	return tx.Create(service).Error
}

func (r *ServiceRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Service, error) {
	var service models.Service
	err := db.First(&service, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &service, nil
}

func (r *ServiceRepositoryImpl) Update(db *gorm.DB, service *models.Service) error {
	result := db.Save(service)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *ServiceRepositoryImpl) ListByOwner(db *gorm.DB, userID string) ([]models.Service, error) {
	var services []models.Service
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&services).Error
	return services, err
}

func (r *ServiceRepositoryImpl) ListActive(db *gorm.DB, category string, limit, offset int) ([]models.Service, int64, error) {
	query := db.Model(&models.Service{}).
		Where("status = ?", models.JobStatusOpen).
		Where("approval_status = ?", models.ApprovalStatusApproved).
		Where("expires_at > ?", time.Now())

	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var services []models.Service
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&services).Error
	return services, total, err
}

func (r *ServiceRepositoryImpl) UpdateApprovalStatus(db *gorm.DB, serviceID string, status models.ApprovalStatus) error {
	result := db.Model(&models.Service{}).Where("id = ?", serviceID).Updates(map[string]interface{}{
		"approval_status": status,
		"updated_at":      time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *ServiceRepositoryImpl) CreateRequest(db *gorm.DB, request *models.ServiceRequest) error {
	return db.Create(request).Error
}

func (r *ServiceRepositoryImpl) FindRequest(db *gorm.DB, serviceID, requesterID string) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	err := db.Where("service_id = ? AND requester_id = ?", serviceID, requesterID).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *ServiceRepositoryImpl) ListRequestsByService(db *gorm.DB, serviceID string) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	err := db.Where("service_id = ?", serviceID).Order("created_at ASC").Find(&requests).Error
	return requests, err
}
