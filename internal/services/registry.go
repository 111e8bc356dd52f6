package services

import (
	"jigz_backend/internal/email"
	"jigz_backend/internal/repositories"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService           *AuthService
	UserService           *UserService
	CoinService           *CoinService
	JobService            *JobService
	ApplicationService    *ApplicationService
	SearchService         *SearchService
	ReviewService         *ReviewService
	ServiceListingService *ServiceListingService
	EmailProvider         email.Provider
}

// NewServiceContainer собирает сервисы поверх репозиториев.
// CoinService выступает и леджером, и платежным шлюзом (CoinGateway)
// для всех платных действий.
func NewServiceContainer(emailProvider email.Provider) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	coinRepo := repositories.NewCoinRepository()
	jobRepo := repositories.NewJobRepository()
	applicationRepo := repositories.NewApplicationRepository()
	serviceRepo := repositories.NewServiceRepository()
	reviewRepo := repositories.NewReviewRepository()
	endorsementRepo := repositories.NewEndorsementRepository()

	coinService := NewCoinService(coinRepo)

	return &ServiceContainer{
		AuthService:           NewAuthService(userRepo, emailProvider),
		UserService:           NewUserService(userRepo, reviewRepo, endorsementRepo, coinService),
		CoinService:           coinService,
		JobService:            NewJobService(jobRepo, userRepo, coinService, emailProvider),
		ApplicationService:    NewApplicationService(applicationRepo, jobRepo, coinService),
		SearchService:         NewSearchService(jobRepo),
		ReviewService:         NewReviewService(reviewRepo, jobRepo, userRepo),
		ServiceListingService: NewServiceListingService(serviceRepo, coinService),
		EmailProvider:         emailProvider,
	}
}
