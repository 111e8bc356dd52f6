package services

import (
	"testing"
	"time"

	"jigz_backend/internal/models"
	"jigz_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"jigz_backend/pkg/apperrors"
)

func newJobServiceUnderTest(balance int) (*JobService, *fakeJobRepo, *fakeUserRepo, *fakeCoinGateway, *fakeEmailProvider) {
	jobRepo := newFakeJobRepo()
	userRepo := newFakeUserRepo()
	gateway := &fakeCoinGateway{balance: balance}
	emailProvider := &fakeEmailProvider{}
	return NewJobService(jobRepo, userRepo, gateway, emailProvider), jobRepo, userRepo, gateway, emailProvider
}

func validCreateJobRequest() *dto.CreateJobRequest {
	return &dto.CreateJobRequest{
		Title:       "Fix leaking kitchen sink",
		Description: "The sink in my kitchen has been leaking for a week, need a plumber.",
		Category:    "plumbing",
		Location:    "Brooklyn",
		MinBudget:   50,
		MaxBudget:   150,
		BudgetType:  "fixed",
		Currency:    "USD",
		Skills:      []string{"plumbing"},
	}
}

func TestCreateJob_ChargesThreeCoins(t *testing.T) {
	service, jobRepo, _, gateway, _ := newJobServiceUnderTest(20)

	job, err := service.CreateJob(nil, "owner", validCreateJobRequest())
	require.NoError(t, err)

	assert.Equal(t, 17, gateway.balance)
	assert.Equal(t, []string{models.CoinReasonPostJob}, gateway.reasons)

	// Новое задание ждет модерации и не видно в поиске.
	assert.Equal(t, string(models.ApprovalStatusPending), job.ApprovalStatus)
	assert.Equal(t, string(models.JobStatusOpen), job.Status)

	stored, err := jobRepo.FindByID(nil, job.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsSearchable(time.Now()))
}

func TestCreateJob_InsufficientCoinsCreatesNothing(t *testing.T) {
	service, jobRepo, _, gateway, _ := newJobServiceUnderTest(2)

	_, err := service.CreateJob(nil, "owner", validCreateJobRequest())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInsufficientCoins, appErr.Code)

	shortage, ok := appErr.Details.(apperrors.CoinShortage)
	require.True(t, ok)
	assert.Equal(t, 3, shortage.CoinsNeeded)
	assert.Equal(t, 2, shortage.CoinsAvailable)

	assert.Equal(t, 2, gateway.balance)
	assert.Empty(t, jobRepo.jobs)
}

func TestUpdateJob_ChargesOneCoinAndRequiresOwner(t *testing.T) {
	service, jobRepo, _, gateway, _ := newJobServiceUnderTest(10)
	jobRepo.put(newOpenJob("job-1", "owner"))

	newTitle := "Fix leaking bathroom sink"
	_, err := service.UpdateJob(nil, "job-1", "stranger", &dto.UpdateJobRequest{Title: &newTitle})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInsufficientPermissions))
	assert.Equal(t, 10, gateway.balance)

	updated, err := service.UpdateJob(nil, "job-1", "owner", &dto.UpdateJobRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, 9, gateway.balance)
	assert.Equal(t, newTitle, updated.Title)
}

func TestExtendJob_AddsThirtyDaysForTwoCoins(t *testing.T) {
	service, jobRepo, _, gateway, _ := newJobServiceUnderTest(10)

	job := newOpenJob("job-1", "owner")
	expiry := time.Now().Add(48 * time.Hour)
	job.ExpiresAt = expiry
	jobRepo.put(job)

	extended, err := service.ExtendJob(nil, "job-1", "owner")
	require.NoError(t, err)

	assert.Equal(t, 8, gateway.balance)
	expected := expiry.AddDate(0, 0, models.ExtendJobDays)
	assert.WithinDuration(t, expected, extended.ExpiresAt, time.Second)
}

func TestExtendJob_ExpiredJobExtendsFromNow(t *testing.T) {
	service, jobRepo, _, _, _ := newJobServiceUnderTest(10)

	job := newOpenJob("job-1", "owner")
	job.ExpiresAt = time.Now().Add(-72 * time.Hour)
	jobRepo.put(job)

	extended, err := service.ExtendJob(nil, "job-1", "owner")
	require.NoError(t, err)

	expected := time.Now().AddDate(0, 0, models.ExtendJobDays)
	assert.WithinDuration(t, expected, extended.ExpiresAt, time.Minute)
}

func TestApproveJob_NotifiesOwner(t *testing.T) {
	service, jobRepo, userRepo, _, emailProvider := newJobServiceUnderTest(10)

	owner := &models.User{Username: "owner", Email: "owner@example.com"}
	owner.ID = "owner"
	userRepo.put(owner)

	job := newOpenJob("job-1", "owner")
	job.ApprovalStatus = models.ApprovalStatusPending
	jobRepo.put(job)

	require.NoError(t, service.ApproveJob(nil, "job-1"))

	stored, err := jobRepo.FindByID(nil, "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusApproved, stored.ApprovalStatus)
	assert.True(t, stored.IsSearchable(time.Now()))

	// Письмо уходит асинхронно.
	assert.Eventually(t, func() bool {
		sent := emailProvider.sentTemplates()
		return len(sent) == 1 && sent[0] == "job_approved"
	}, time.Second, 10*time.Millisecond)
}

func TestCompleteJob_OnlyOwner(t *testing.T) {
	service, jobRepo, _, _, _ := newJobServiceUnderTest(10)
	jobRepo.put(newOpenJob("job-1", "owner"))

	err := service.CompleteJob(nil, "job-1", "stranger")
	require.Error(t, err)

	require.NoError(t, service.CompleteJob(nil, "job-1", "owner"))

	stored, err := jobRepo.FindByID(nil, "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, stored.Status)
}
