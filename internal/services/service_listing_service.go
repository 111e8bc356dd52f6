package services

import (
	"encoding/json"
	"time"

	"jigz_backend/internal/models"
	"jigz_backend/internal/repositories"
	"jigz_backend/internal/services/dto"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"jigz_backend/pkg/apperrors"
)

// serviceLifetimeDays - срок жизни листинга услуги.
const serviceLifetimeDays = 30

type ServiceListingService struct {
	serviceRepo repositories.ServiceRepository
	coinGateway CoinGateway
}

func NewServiceListingService(serviceRepo repositories.ServiceRepository, coinGateway CoinGateway) *ServiceListingService {
	return &ServiceListingService{
		serviceRepo: serviceRepo,
		coinGateway: coinGateway,
	}
}

// CreateService публикует услугу за CoinCostPostService. Самое дорогое
// действие платформы, списание и вставка в одной транзакции.
func (s *ServiceListingService) CreateService(db *gorm.DB, userID string, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	skillsJSON, err := json.Marshal(req.Skills)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	service := &models.Service{
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
		ExpiresAt:       time.Now().AddDate(0, 0, serviceLifetimeDays),
	}

	err = s.coinGateway.Charge(db, userID, models.CoinCostPostService, models.CoinReasonPostService, func(tx *gorm.DB) error {
		return s.serviceRepo.Create(tx, service)
	})
	if err != nil {
		return nil, err
	}

	return buildServiceResponse(service), nil
}

func (s *ServiceListingService) GetService(db *gorm.DB, serviceID string) (*dto.ServiceResponse, error) {
	service, err := s.serviceRepo.FindByID(db, serviceID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrServiceNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return buildServiceResponse(service), nil
}

func (s *ServiceListingService) ListServices(db *gorm.DB, category string, page, limit int) (*dto.ServiceListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	services, total, err := s.serviceRepo.ListActive(db, category, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	response := &dto.ServiceListResponse{
		Services:   make([]dto.ServiceResponse, 0, len(services)),
		Pagination: BuildPagination(page, limit, total),
	}
	for i := range services {
		response.Services = append(response.Services, *buildServiceResponse(&services[i]))
	}
	return response, nil
}

func (s *ServiceListingService) ListMyServices(db *gorm.DB, userID string) ([]dto.ServiceResponse, error) {
	services, err := s.serviceRepo.ListByOwner(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ServiceResponse, 0, len(services))
	for i := range services {
		responses = append(responses, *buildServiceResponse(&services[i]))
	}
	return responses, nil
}

// RequestService - бесплатная заявка клиента на услугу.
func (s *ServiceListingService) RequestService(db *gorm.DB, serviceID, requesterID string, req *dto.CreateServiceRequestRequest) (*dto.ServiceRequestResponse, error) {
	service, err := s.serviceRepo.FindByID(db, serviceID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrServiceNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if service.UserID == requesterID {
		return nil, apperrors.ErrInvalidOperation("service", "cannot request your own service")
	}
	if service.ApprovalStatus != models.ApprovalStatusApproved || service.Status != models.JobStatusOpen {
		return nil, apperrors.ErrInvalidStatus("service", "service is not available")
	}
	if !service.ExpiresAt.After(time.Now()) {
		return nil, apperrors.ErrInvalidStatus("service", "service listing has expired")
	}

	if _, err := s.serviceRepo.FindRequest(db, serviceID, requesterID); err == nil {
		return nil, apperrors.ErrConflict(nil, "service", "request already sent")
	}

	request := &models.ServiceRequest{
		ServiceID:   serviceID,
		RequesterID: requesterID,
		Message:     req.Message,
		Status:      models.ApplicationStatusPending,
	}
	if err := s.serviceRepo.CreateRequest(db, request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ServiceRequestResponse{
		ID:          request.ID,
		ServiceID:   request.ServiceID,
		RequesterID: request.RequesterID,
		Message:     request.Message,
		Status:      string(request.Status),
		CreatedAt:   request.CreatedAt,
	}, nil
}

// Moderation

func (s *ServiceListingService) ApproveService(db *gorm.DB, serviceID string) error {
	if err := s.serviceRepo.UpdateApprovalStatus(db, serviceID, models.ApprovalStatusApproved); err != nil {
		if apperrors.Is(err, repositories.ErrServiceNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ServiceListingService) RejectService(db *gorm.DB, serviceID string) error {
	if err := s.serviceRepo.UpdateApprovalStatus(db, serviceID, models.ApprovalStatusRejected); err != nil {
		if apperrors.Is(err, repositories.ErrServiceNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func buildServiceResponse(service *models.Service) *dto.ServiceResponse {
	var skills []string
	if len(service.Skills) > 0 {
		_ = json.Unmarshal(service.Skills, &skills)
	}

	return &dto.ServiceResponse{
		ID:              service.ID,
		UserID:          service.UserID,
		Title:           service.Title,
		Description:     service.Description,
		Category:        service.Category,
		Location:        service.Location,
		MinBudget:       service.MinBudget,
		MaxBudget:       service.MaxBudget,
		BudgetType:      string(service.BudgetType),
		Currency:        service.Currency,
		ExperienceLevel: service.ExperienceLevel,
		Skills:          skills,
		Status:          string(service.Status),
		ApprovalStatus:  string(service.ApprovalStatus),
		ExpiresAt:       service.ExpiresAt,
		CreatedAt:       service.CreatedAt,
	}
}
