package services

import (
	"fmt"
	"sync"
	"time"

	"jigz_backend/internal/config"
	"jigz_backend/internal/email"
	"jigz_backend/internal/models"
	"jigz_backend/internal/repositories"

	"gorm.io/gorm"
	"jigz_backend/pkg/apperrors"
)

func init() {
	cfg := &config.Config{}
	cfg.Coins.UserBaseline = 20
	cfg.Coins.AdminBaseline = 100
	cfg.Coins.ResetDays = 30
	cfg.Search.CacheTTLSeconds = 30
	cfg.Search.DefaultLimit = 20
	config.AppConfig = cfg
}

// fakeCoinGateway эмулирует транзакционную семантику шлюза: списание
// фиксируется только если мутация fn прошла успешно.
type fakeCoinGateway struct {
	balance int
	charges []int
	reasons []string
}

func (g *fakeCoinGateway) Charge(db *gorm.DB, userID string, cost int, reason string, fn func(tx *gorm.DB) error) error {
	if g.balance < cost {
		return apperrors.ErrInsufficientCoins(cost, g.balance)
	}
	if fn != nil {
		if err := fn(db); err != nil {
			return err
		}
	}
	g.balance -= cost
	g.charges = append(g.charges, cost)
	g.reasons = append(g.reasons, reason)
	return nil
}

// fakeEmailProvider собирает отправленные письма вместо доставки.
// Мьютекс нужен: сервисы шлют письма из горутин.
type fakeEmailProvider struct {
	mu   sync.Mutex
	sent []string
}

func (p *fakeEmailProvider) sentTemplates() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.sent...)
}

func (p *fakeEmailProvider) Send(msg *email.Email) error { return nil }
func (p *fakeEmailProvider) SendTemplate(to []string, subject string, templateName string, data email.TemplateData) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, templateName)
	return nil
}
func (p *fakeEmailProvider) SendWelcome(to string, username string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, "welcome")
	return nil
}
func (p *fakeEmailProvider) Validate() error { return nil }
func (p *fakeEmailProvider) Close() error    { return nil }

// fakeUserRepo - пользователи в памяти. Refresh-токены в этих тестах
// не используются.
type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) put(user *models.User) {
	copied := *user
	r.users[user.ID] = &copied
}

func (r *fakeUserRepo) FindByID(db *gorm.DB, id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(db *gorm.DB, emailAddr string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == emailAddr {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(db *gorm.DB, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(db *gorm.DB, user *models.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	}
	r.put(user)
	return nil
}

func (r *fakeUserRepo) UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Status = status
	return nil
}

func (r *fakeUserRepo) Delete(db *gorm.DB, userID string) error {
	if _, ok := r.users[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}

func (r *fakeUserRepo) FindAll(db *gorm.DB, limit, offset int) ([]models.User, error) {
	var users []models.User
	for _, user := range r.users {
		users = append(users, *user)
	}
	return users, nil
}

func (r *fakeUserRepo) CountAll(db *gorm.DB) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) CreateRefreshToken(db *gorm.DB, token *models.RefreshToken) error { return nil }
func (r *fakeUserRepo) FindRefreshToken(db *gorm.DB, token string) (*models.RefreshToken, error) {
	return nil, repositories.ErrUserNotFound
}
func (r *fakeUserRepo) DeleteRefreshToken(db *gorm.DB, token string) error       { return nil }
func (r *fakeUserRepo) DeleteUserRefreshTokens(db *gorm.DB, userID string) error { return nil }
func (r *fakeUserRepo) CleanExpiredRefreshTokens(db *gorm.DB) (int64, error)     { return 0, nil }

// fakeJobRepo - репозиторий заданий в памяти.
type fakeJobRepo struct {
	jobs map[string]*models.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*models.Job)}
}

func (r *fakeJobRepo) put(job *models.Job) {
	copied := *job
	r.jobs[job.ID] = &copied
}

func (r *fakeJobRepo) Create(db *gorm.DB, job *models.Job) error {
	if job.ID == "" {
		job.ID = fmt.Sprintf("job-%d", len(r.jobs)+1)
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	r.put(job)
	return nil
}

func (r *fakeJobRepo) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, repositories.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (r *fakeJobRepo) Update(db *gorm.DB, job *models.Job) error {
	if _, ok := r.jobs[job.ID]; !ok {
		return repositories.ErrJobNotFound
	}
	r.put(job)
	return nil
}

func (r *fakeJobRepo) Delete(db *gorm.DB, id string) error {
	if _, ok := r.jobs[id]; !ok {
		return repositories.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepo) ListByOwner(db *gorm.DB, userID string) ([]models.Job, error) {
	var jobs []models.Job
	for _, job := range r.jobs {
		if job.UserID == userID {
			jobs = append(jobs, *job)
		}
	}
	return jobs, nil
}

func (r *fakeJobRepo) ListPendingApproval(db *gorm.DB, limit, offset int) ([]models.Job, error) {
	var jobs []models.Job
	for _, job := range r.jobs {
		if job.ApprovalStatus == models.ApprovalStatusPending {
			jobs = append(jobs, *job)
		}
	}
	return jobs, nil
}

func (r *fakeJobRepo) UpdateApprovalStatus(db *gorm.DB, jobID string, status models.ApprovalStatus) error {
	job, ok := r.jobs[jobID]
	if !ok {
		return repositories.ErrJobNotFound
	}
	job.ApprovalStatus = status
	return nil
}

func (r *fakeJobRepo) UpdateStatus(db *gorm.DB, jobID string, status models.JobStatus) error {
	job, ok := r.jobs[jobID]
	if !ok {
		return repositories.ErrJobNotFound
	}
	job.Status = status
	return nil
}

func (r *fakeJobRepo) ExtendExpiry(tx *gorm.DB, jobID string, until time.Time) error {
	job, ok := r.jobs[jobID]
	if !ok {
		return repositories.ErrJobNotFound
	}
	job.ExpiresAt = until
	return nil
}

func (r *fakeJobRepo) IncrementViews(db *gorm.DB, jobID string) error {
	job, ok := r.jobs[jobID]
	if !ok {
		return repositories.ErrJobNotFound
	}
	job.Views++
	return nil
}

func (r *fakeJobRepo) Search(db *gorm.DB, criteria repositories.JobSearchCriteria) ([]models.Job, int64, error) {
	now := time.Now()
	var matched []models.Job
	for _, job := range r.jobs {
		if job.IsSearchable(now) {
			matched = append(matched, *job)
		}
	}

	total := int64(len(matched))
	offset := (criteria.Page - 1) * criteria.Limit
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + criteria.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeJobRepo) CloseExpired(db *gorm.DB) (int64, error) {
	var closed int64
	now := time.Now()
	for _, job := range r.jobs {
		if job.Status == models.JobStatusOpen && job.ExpiresAt.Before(now) {
			job.Status = models.JobStatusCompleted
			closed++
		}
	}
	return closed, nil
}

// fakeApplicationRepo - отклики в памяти.
type fakeApplicationRepo struct {
	applications map[string]*models.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: make(map[string]*models.Application)}
}

func (r *fakeApplicationRepo) Create(tx *gorm.DB, application *models.Application) error {
	if application.ID == "" {
		application.ID = fmt.Sprintf("app-%d", len(r.applications)+1)
	}
	if application.CreatedAt.IsZero() {
		application.CreatedAt = time.Now()
	}
	copied := *application
	r.applications[application.ID] = &copied
	return nil
}

func (r *fakeApplicationRepo) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	application, ok := r.applications[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	copied := *application
	return &copied, nil
}

func (r *fakeApplicationRepo) FindByJobAndApplicant(db *gorm.DB, jobID, applicantID string) (*models.Application, error) {
	for _, application := range r.applications {
		if application.JobID == jobID && application.ApplicantID == applicantID {
			copied := *application
			return &copied, nil
		}
	}
	return nil, repositories.ErrApplicationNotFound
}

func (r *fakeApplicationRepo) ListByJob(db *gorm.DB, jobID string) ([]models.Application, error) {
	var result []models.Application
	for _, application := range r.applications {
		if application.JobID == jobID {
			result = append(result, *application)
		}
	}
	// Хронологический порядок, как в реальном репозитории.
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[j].CreatedAt.Before(result[i].CreatedAt) {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result, nil
}

func (r *fakeApplicationRepo) ListByApplicant(db *gorm.DB, applicantID string) ([]models.Application, error) {
	var result []models.Application
	for _, application := range r.applications {
		if application.ApplicantID == applicantID {
			result = append(result, *application)
		}
	}
	return result, nil
}

func (r *fakeApplicationRepo) IncreaseBid(tx *gorm.DB, id string, additionalCoins int) error {
	application, ok := r.applications[id]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	application.CoinsBid += additionalCoins
	return nil
}

func (r *fakeApplicationRepo) UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus) error {
	application, ok := r.applications[id]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	application.Status = status
	return nil
}
