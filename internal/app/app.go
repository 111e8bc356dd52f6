package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jigz_backend/database"
	"jigz_backend/internal/config"
	"jigz_backend/internal/email"
	"jigz_backend/internal/handlers"
	"jigz_backend/internal/logger"
	"jigz_backend/internal/middleware"
	"jigz_backend/internal/models"
	"jigz_backend/internal/repositories"
	"jigz_backend/internal/routes"
	"jigz_backend/internal/services"
	"jigz_backend/internal/validator"
	"jigz_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Database migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter, serviceContainer := SetupRouter(cfg, gormDB)

	startWorkers(context.Background(), gormDB, serviceContainer)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает сервисы, хэндлеры и gin-роутер.
// Возвращает контейнер сервисов, чтобы воркеры и тесты могли
// переиспользовать те же экземпляры (в частности поисковый кэш).
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *services.ServiceContainer) {
	var emailProvider email.Provider
	if cfg.Email.Enabled {
		emailProvider = email.NewSMTPProvider()
		if err := emailProvider.Validate(); err != nil {
			logger.Fatal("Invalid email configuration", "error", err)
		}
	} else {
		logger.Warn("Email sending disabled, using mock provider")
		emailProvider = &MockEmailProvider{}
	}

	serviceContainer := services.NewServiceContainer(emailProvider)
	appHandlers := initializeHandlers(serviceContainer)
	ginRouter := initializeGinRouter(cfg, gormDB)

	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter, serviceContainer
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(baseHandler, container.AuthService),
		UserHandler:        handlers.NewUserHandler(baseHandler, container.UserService),
		CoinHandler:        handlers.NewCoinHandler(baseHandler, container.CoinService),
		JobHandler:         handlers.NewJobHandler(baseHandler, container.JobService),
		ApplicationHandler: handlers.NewApplicationHandler(baseHandler, container.ApplicationService),
		SearchHandler:      handlers.NewSearchHandler(baseHandler, container.SearchService),
		ReviewHandler:      handlers.NewReviewHandler(baseHandler, container.ReviewService),
		ServiceHandler:     handlers.NewServiceHandler(baseHandler, container.ServiceListingService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func startWorkers(ctx context.Context, db *gorm.DB, container *services.ServiceContainer) {
	jobRepo := repositories.NewJobRepository()
	userRepo := repositories.NewUserRepository()

	workers.NewJobWorker(db, jobRepo, container.SearchService).Start(ctx)
	workers.NewTokenWorker(db, userRepo).Start(ctx)
	logger.Info("Background workers started")
}

// seedFirstAdmin создает первого администратора, если его еще нет.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("First admin credentials are not configured. Skipping admin seeding.")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var adminUser models.User
		result := tx.Where("email = ?", adminEmail).First(&adminUser)

		if result.Error == nil {
			logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		admin := &models.User{
			Username:      "admin",
			Email:         adminEmail,
			PasswordHash:  string(hash),
			Role:          models.UserRoleAdmin,
			Status:        models.UserStatusActive,
			Coins:         cfg.Coins.AdminBaseline,
			LastCoinReset: time.Now(),
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		logger.Info("First admin user created", "email", adminEmail)
		return nil
	})
}
