package workers

import (
	"context"
	"time"

	"jigz_backend/internal/logger"
	"jigz_backend/internal/repositories"

	"gorm.io/gorm"
)

// TokenWorker вычищает просроченные refresh-токены.
type TokenWorker struct {
	db       *gorm.DB
	userRepo repositories.UserRepository
}

func NewTokenWorker(db *gorm.DB, userRepo repositories.UserRepository) *TokenWorker {
	return &TokenWorker{db: db, userRepo: userRepo}
}

func (w *TokenWorker) Start(ctx context.Context) {
	go w.cleanExpiredTokens(ctx)
}

func (w *TokenWorker) cleanExpiredTokens(ctx context.Context) {
	ticker := time.NewTicker(6 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("token_worker", "stopped", nil)
			return
		case <-ticker.C:
			cleaned, err := w.userRepo.CleanExpiredRefreshTokens(w.db)
			if err != nil {
				logger.WorkerLog("token_worker", "clean expired refresh tokens", err)
				continue
			}
			if cleaned > 0 {
				logger.Info("cleaned expired refresh tokens", "count", cleaned)
			}
		}
	}
}
