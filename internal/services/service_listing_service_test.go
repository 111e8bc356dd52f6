package services

import (
	"fmt"
	"testing"
	"time"

	"jigz_backend/internal/models"
	"jigz_backend/internal/repositories"
	"jigz_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"jigz_backend/pkg/apperrors"
)

type fakeServiceRepo struct {
	services map[string]*models.Service
	requests []*models.ServiceRequest
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[string]*models.Service)}
}

func (r *fakeServiceRepo) put(service *models.Service) {
	copied := *service
	r.services[service.ID] = &copied
}

func (r *fakeServiceRepo) Create(tx *gorm.DB, service *models.Service) error {
	if service.ID == "" {
		service.ID = fmt.Sprintf("service-%d", len(r.services)+1)
	}
	r.put(service)
	return nil
}

func (r *fakeServiceRepo) FindByID(db *gorm.DB, id string) (*models.Service, error) {
	service, ok := r.services[id]
	if !ok {
		return nil, repositories.ErrServiceNotFound
	}
	copied := *service
	return &copied, nil
}

func (r *fakeServiceRepo) Update(db *gorm.DB, service *models.Service) error {
	if _, ok := r.services[service.ID]; !ok {
		return repositories.ErrServiceNotFound
	}
	r.put(service)
	return nil
}

func (r *fakeServiceRepo) ListByOwner(db *gorm.DB, userID string) ([]models.Service, error) {
	var result []models.Service
	for _, service := range r.services {
		if service.UserID == userID {
			result = append(result, *service)
		}
	}
	return result, nil
}

func (r *fakeServiceRepo) ListActive(db *gorm.DB, category string, limit, offset int) ([]models.Service, int64, error) {
	var result []models.Service
	now := time.Now()
	for _, service := range r.services {
		if service.Status != models.JobStatusOpen || service.ApprovalStatus != models.ApprovalStatusApproved {
			continue
		}
		if !service.ExpiresAt.After(now) {
			continue
		}
		if category != "" && service.Category != category {
			continue
		}
		result = append(result, *service)
	}
	return result, int64(len(result)), nil
}

func (r *fakeServiceRepo) UpdateApprovalStatus(db *gorm.DB, serviceID string, status models.ApprovalStatus) error {
	service, ok := r.services[serviceID]
	if !ok {
		return repositories.ErrServiceNotFound
	}
	service.ApprovalStatus = status
	return nil
}

func (r *fakeServiceRepo) CreateRequest(db *gorm.DB, request *models.ServiceRequest) error {
	if request.ID == "" {
		request.ID = fmt.Sprintf("request-%d", len(r.requests)+1)
	}
	copied := *request
	r.requests = append(r.requests, &copied)
	return nil
}

func (r *fakeServiceRepo) FindRequest(db *gorm.DB, serviceID, requesterID string) (*models.ServiceRequest, error) {
	for _, request := range r.requests {
		if request.ServiceID == serviceID && request.RequesterID == requesterID {
			copied := *request
			return &copied, nil
		}
	}
	return nil, repositories.ErrServiceRequestNotFound
}

func (r *fakeServiceRepo) ListRequestsByService(db *gorm.DB, serviceID string) ([]models.ServiceRequest, error) {
	var result []models.ServiceRequest
	for _, request := range r.requests {
		if request.ServiceID == serviceID {
			result = append(result, *request)
		}
	}
	return result, nil
}

func newListingServiceUnderTest(balance int) (*ServiceListingService, *fakeServiceRepo, *fakeCoinGateway) {
	serviceRepo := newFakeServiceRepo()
	gateway := &fakeCoinGateway{balance: balance}
	return NewServiceListingService(serviceRepo, gateway), serviceRepo, gateway
}

func validCreateServiceRequest() *dto.CreateServiceRequest {
	return &dto.CreateServiceRequest{
		Title:       "Professional plumbing services",
		Description: "Licensed plumber available for repairs and installations in Brooklyn.",
		Category:    "plumbing",
		Location:    "Brooklyn",
		MinBudget:   40,
		MaxBudget:   120,
		BudgetType:  "hourly",
		Currency:    "USD",
	}
}

func TestCreateService_ChargesTwentyCoins(t *testing.T) {
	service, serviceRepo, gateway := newListingServiceUnderTest(25)

	response, err := service.CreateService(nil, "provider", validCreateServiceRequest())
	require.NoError(t, err)

	assert.Equal(t, 5, gateway.balance)
	assert.Equal(t, []string{models.CoinReasonPostService}, gateway.reasons)
	assert.Equal(t, string(models.ApprovalStatusPending), response.ApprovalStatus)
	require.Len(t, serviceRepo.services, 1)
}

func TestCreateService_InsufficientCoins(t *testing.T) {
	service, serviceRepo, gateway := newListingServiceUnderTest(19)

	_, err := service.CreateService(nil, "provider", validCreateServiceRequest())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInsufficientCoins, appErr.Code)

	shortage, ok := appErr.Details.(apperrors.CoinShortage)
	require.True(t, ok)
	assert.Equal(t, 20, shortage.CoinsNeeded)
	assert.Equal(t, 19, shortage.CoinsAvailable)

	assert.Equal(t, 19, gateway.balance)
	assert.Empty(t, serviceRepo.services)
}

func putApprovedService(repo *fakeServiceRepo, id, ownerID string) {
	service := &models.Service{
		UserID:         ownerID,
		Title:          "Plumbing",
		Status:         models.JobStatusOpen,
		ApprovalStatus: models.ApprovalStatusApproved,
		ExpiresAt:      time.Now().Add(72 * time.Hour),
	}
	service.ID = id
	repo.put(service)
}

func TestRequestService_CreatesPendingRequest(t *testing.T) {
	service, serviceRepo, _ := newListingServiceUnderTest(0)
	putApprovedService(serviceRepo, "service-1", "provider")

	response, err := service.RequestService(nil, "service-1", "client", &dto.CreateServiceRequestRequest{Message: "need help"})
	require.NoError(t, err)
	assert.Equal(t, string(models.ApplicationStatusPending), response.Status)
}

func TestRequestService_OwnServiceRejected(t *testing.T) {
	service, serviceRepo, _ := newListingServiceUnderTest(0)
	putApprovedService(serviceRepo, "service-1", "provider")

	_, err := service.RequestService(nil, "service-1", "provider", &dto.CreateServiceRequestRequest{})
	require.Error(t, err)
}

func TestRequestService_DuplicateRejected(t *testing.T) {
	service, serviceRepo, _ := newListingServiceUnderTest(0)
	putApprovedService(serviceRepo, "service-1", "provider")

	_, err := service.RequestService(nil, "service-1", "client", &dto.CreateServiceRequestRequest{})
	require.NoError(t, err)

	_, err = service.RequestService(nil, "service-1", "client", &dto.CreateServiceRequestRequest{})
	require.Error(t, err)
}
