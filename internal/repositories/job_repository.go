package repositories

import (
	"errors"
	"time"

	"jigz_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrJobNotFound = errors.New("job not found")

// JobSearchCriteria - полный набор фильтров публичного поиска.
// Все фильтры опциональны и комбинируются через AND; предикат
// "open + approved + не просрочено" добавляется всегда.
type JobSearchCriteria struct {
	Query           string
	Category        string
	Location        string
	ExperienceLevel string
	MinBudget       *float64
	MaxBudget       *float64
	SortBy          string // relevance | date | budget_low | budget_high
	SortOrder       string // asc | desc
	Page            int
	Limit           int
}

type JobRepository interface {
	Create(db *gorm.DB, job *models.Job) error
	FindByID(db *gorm.DB, id string) (*models.Job, error)
	Update(db *gorm.DB, job *models.Job) error
	Delete(db *gorm.DB, id string) error
	ListByOwner(db *gorm.DB, userID string) ([]models.Job, error)
	ListPendingApproval(db *gorm.DB, limit, offset int) ([]models.Job, error)
	UpdateApprovalStatus(db *gorm.DB, jobID string, status models.ApprovalStatus) error
	UpdateStatus(db *gorm.DB, jobID string, status models.JobStatus) error
	ExtendExpiry(tx *gorm.DB, jobID string, until time.Time) error
	IncrementViews(db *gorm.DB, jobID string) error

	// Search возвращает страницу публично видимых вакансий и общее
	// количество совпадений до пагинации.
	Search(db *gorm.DB, criteria JobSearchCriteria) ([]models.Job, int64, error)

	// CloseExpired переводит просроченные открытые вакансии в completed.
	// Денормализация для фонового воркера; поиск фильтрует по expires_at сам.
	CloseExpired(db *gorm.DB) (int64, error)
}

type JobRepositoryImpl struct{}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{}
}

func (r *JobRepositoryImpl) Create(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := db.First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) Update(db *gorm.DB, job *models.Job) error {
	result := db.Save(job)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Job{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) ListByOwner(db *gorm.DB, userID string) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) ListPendingApproval(db *gorm.DB, limit, offset int) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Where("approval_status = ?", models.ApprovalStatusPending).
		Order("created_at ASC").Limit(limit).Offset(offset).Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) UpdateApprovalStatus(db *gorm.DB, jobID string, status models.ApprovalStatus) error {
	result := db.Model(&models.Job{}).Where("id = ?", jobID).Updates(map[string]interface{}{
		"approval_status": status,
		"updated_at":      time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) UpdateStatus(db *gorm.DB, jobID string, status models.JobStatus) error {
	result := db.Model(&models.Job{}).Where("id = ?", jobID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) ExtendExpiry(tx *gorm.DB, jobID string, until time.Time) error {
	result := tx.Model(&models.Job{}).Where("id = ?", jobID).Updates(map[string]interface{}{
		"expires_at": until,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) IncrementViews(db *gorm.DB, jobID string) error {
	return db.Model(&models.Job{}).Where("id = ?", jobID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *JobRepositoryImpl) Search(db *gorm.DB, criteria JobSearchCriteria) ([]models.Job, int64, error) {
	query := db.Model(&models.Job{}).
		Where("status = ?", models.JobStatusOpen).
		Where("approval_status = ?", models.ApprovalStatusApproved).
		Where("expires_at > ?", time.Now())

	if criteria.Query != "" {
		pattern := "%" + criteria.Query + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if criteria.Category != "" {
		query = query.Where("category = ?", criteria.Category)
	}
	if criteria.Location != "" {
		query = query.Where("location = ?", criteria.Location)
	}
	if criteria.ExperienceLevel != "" {
		query = query.Where("experience_level = ?", criteria.ExperienceLevel)
	}
	// Пересечение бюджетных интервалов: [min_budget, max_budget] вакансии
	// должен пересекаться с запрошенным [MinBudget, MaxBudget].
	if criteria.MinBudget != nil {
		query = query.Where("max_budget >= ?", *criteria.MinBudget)
	}
	if criteria.MaxBudget != nil {
		query = query.Where("min_budget <= ?", *criteria.MaxBudget)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyJobSort(query, criteria)

	offset := (criteria.Page - 1) * criteria.Limit

	var jobs []models.Job
	err := query.Limit(criteria.Limit).Offset(offset).Find(&jobs).Error
	return jobs, total, err
}

// applyJobSort переводит sortBy/sortOrder в ORDER BY.
// relevance всегда best-match-first, порядок не переключается;
// остальные ключи уважают sortOrder.
func applyJobSort(query *gorm.DB, criteria JobSearchCriteria) *gorm.DB {
	direction := sortDirection(criteria.SortBy, criteria.SortOrder)

	switch criteria.SortBy {
	case "budget_low", "budget_high":
		return query.Order("max_budget " + direction + ", created_at DESC")
	case "date":
		return query.Order("created_at " + direction)
	case "relevance", "":
		if criteria.Query != "" {
			pattern := "%" + criteria.Query + "%"
			return query.Clauses(clause.OrderBy{
				Expression: clause.Expr{
					SQL: "(CASE WHEN title ILIKE ? THEN 2 ELSE 0 END + CASE WHEN description ILIKE ? THEN 1 ELSE 0 END) DESC, created_at DESC",
					Vars: []interface{}{pattern, pattern},
				},
			})
		}
		return query.Order("created_at DESC")
	default:
		return query.Order("created_at " + direction)
	}
}

// sortDirection возвращает направление ORDER BY. Пустой sortOrder
// означает направление по умолчанию для ключа: budget_low по
// возрастанию, остальные по убыванию.
func sortDirection(sortBy, sortOrder string) string {
	switch sortOrder {
	case "asc":
		return "ASC"
	case "desc":
		return "DESC"
	}
	if sortBy == "budget_low" {
		return "ASC"
	}
	return "DESC"
}

func (r *JobRepositoryImpl) CloseExpired(db *gorm.DB) (int64, error) {
	result := db.Model(&models.Job{}).
		Where("status = ? AND expires_at < ?", models.JobStatusOpen, time.Now()).
		Updates(map[string]interface{}{
			"status":     models.JobStatusCompleted,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}
