package services

import (
	"fmt"
	"sync"
	"time"

	"jigz_backend/internal/config"
	"jigz_backend/internal/models"
	"jigz_backend/internal/repositories"
	"jigz_backend/internal/services/dto"

	"gorm.io/gorm"
	"jigz_backend/pkg/apperrors"
)

// maxSearchLimit - потолок размера страницы выдачи.
const maxSearchLimit = 100

// cachedSearchResult - мемоизированная страница выдачи.
type cachedSearchResult struct {
	jobs      []models.Job
	total     int64
	expiresAt time.Time
}

// SearchService выполняет публичный поиск заданий с коротким
// мемо-кэшем. Кэш ключуется полным набором критериев, поэтому разные
// фильтры и страницы не пересекаются.
type SearchService struct {
	jobRepo repositories.JobRepository

	mu    sync.Mutex
	cache map[string]cachedSearchResult
}

func NewSearchService(jobRepo repositories.JobRepository) *SearchService {
	return &SearchService{
		jobRepo: jobRepo,
		cache:   make(map[string]cachedSearchResult),
	}
}

// SearchJobs - GET /search/jobs. Всегда возвращает searchMeta с
// временем выполнения и признаком попадания в кэш.
func (s *SearchService) SearchJobs(db *gorm.DB, req *dto.JobSearchRequest) (*dto.JobSearchResponse, error) {
	criteria := normalizeCriteria(req)
	started := time.Now()

	key := cacheKey(criteria)
	ttl := time.Duration(config.GetConfig().Search.CacheTTLSeconds) * time.Second

	jobs, total, fromCache := s.lookup(key)
	if !fromCache {
		var err error
		jobs, total, err = s.jobRepo.Search(db, criteria)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		s.store(key, jobs, total, ttl)
	}

	response := &dto.JobSearchResponse{
		Jobs:       buildJobListResponse(jobs).Jobs,
		Pagination: BuildPagination(criteria.Page, criteria.Limit, total),
		SearchMeta: dto.SearchMeta{
			ExecutionTimeMs: time.Since(started).Milliseconds(),
			FromCache:       fromCache,
		},
	}
	return response, nil
}

// InvalidateCache сбрасывает мемо-кэш. Вызывается фоновым воркером
// после закрытия просроченных заданий.
func (s *SearchService) InvalidateCache() {
	s.mu.Lock()
	s.cache = make(map[string]cachedSearchResult)
	s.mu.Unlock()
}

func (s *SearchService) lookup(key string) ([]models.Job, int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.cache[key]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.cache, key)
		return nil, 0, false
	}
	return entry.jobs, entry.total, true
}

func (s *SearchService) store(key string, jobs []models.Job, total int64, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Попутно вычищаем протухшие записи, кэш не растет бесконечно.
	now := time.Now()
	for k, entry := range s.cache {
		if now.After(entry.expiresAt) {
			delete(s.cache, k)
		}
	}

	s.cache[key] = cachedSearchResult{
		jobs:      jobs,
		total:     total,
		expiresAt: now.Add(ttl),
	}
}

func normalizeCriteria(req *dto.JobSearchRequest) repositories.JobSearchCriteria {
	cfg := config.GetConfig()

	criteria := repositories.JobSearchCriteria{
		Query:           req.Query,
		Category:        req.Category,
		Location:        req.Location,
		ExperienceLevel: req.ExperienceLevel,
		MinBudget:       req.MinBudget,
		MaxBudget:       req.MaxBudget,
		SortBy:          req.SortBy,
		SortOrder:       req.SortOrder,
		Page:            req.Page,
		Limit:           req.Limit,
	}
	if criteria.SortBy == "" {
		criteria.SortBy = "relevance"
	}
	if criteria.SortOrder == "" {
		// Направление по умолчанию зашито в ключ: budget_low по
		// возрастанию, остальные по убыванию.
		if criteria.SortBy == "budget_low" {
			criteria.SortOrder = "asc"
		} else {
			criteria.SortOrder = "desc"
		}
	}
	if criteria.Page < 1 {
		criteria.Page = 1
	}
	if criteria.Limit < 1 {
		criteria.Limit = cfg.Search.DefaultLimit
	}
	if criteria.Limit > maxSearchLimit {
		criteria.Limit = maxSearchLimit
	}
	return criteria
}

func cacheKey(criteria repositories.JobSearchCriteria) string {
	minBudget, maxBudget := "", ""
	if criteria.MinBudget != nil {
		minBudget = fmt.Sprintf("%g", *criteria.MinBudget)
	}
	if criteria.MaxBudget != nil {
		maxBudget = fmt.Sprintf("%g", *criteria.MaxBudget)
	}

	return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s|%s|%d|%d",
		criteria.Query, criteria.Category, criteria.Location, criteria.ExperienceLevel,
		minBudget, maxBudget, criteria.SortBy, criteria.SortOrder,
		criteria.Page, criteria.Limit)
}

// BuildPagination считает производные поля страницы.
func BuildPagination(page, limit int, total int64) dto.Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))

	return dto.Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}
