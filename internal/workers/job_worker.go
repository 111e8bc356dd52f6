package workers

import (
	"context"
	"time"

	"jigz_backend/internal/logger"
	"jigz_backend/internal/repositories"
	"jigz_backend/internal/services"

	"gorm.io/gorm"
)

// JobWorker закрывает просроченные задания в фоне. Поиск и так
// фильтрует по expires_at, воркер лишь денормализует статус и
// сбрасывает поисковый кэш.
type JobWorker struct {
	db            *gorm.DB
	jobRepo       repositories.JobRepository
	searchService *services.SearchService
}

func NewJobWorker(db *gorm.DB, jobRepo repositories.JobRepository, searchService *services.SearchService) *JobWorker {
	return &JobWorker{
		db:            db,
		jobRepo:       jobRepo,
		searchService: searchService,
	}
}

func (w *JobWorker) Start(ctx context.Context) {
	go w.closeExpiredJobs(ctx)
}

func (w *JobWorker) closeExpiredJobs(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("job_worker", "stopped", nil)
			return
		case <-ticker.C:
			closed, err := w.jobRepo.CloseExpired(w.db)
			if err != nil {
				logger.WorkerLog("job_worker", "close expired jobs", err)
				continue
			}
			if closed > 0 {
				logger.Info("closed expired jobs", "count", closed)
				w.searchService.InvalidateCache()
			}
		}
	}
}
