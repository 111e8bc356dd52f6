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

func newOpenJob(id, ownerID string) *models.Job {
	job := &models.Job{
		UserID:         ownerID,
		Title:          "Fix kitchen sink",
		Status:         models.JobStatusOpen,
		ApprovalStatus: models.ApprovalStatusApproved,
		ExpiresAt:      time.Now().Add(72 * time.Hour),
	}
	job.ID = id
	job.CreatedAt = time.Now()
	return job
}

func newApplicationServiceUnderTest(balance int) (*ApplicationService, *fakeApplicationRepo, *fakeJobRepo, *fakeCoinGateway) {
	applicationRepo := newFakeApplicationRepo()
	jobRepo := newFakeJobRepo()
	gateway := &fakeCoinGateway{balance: balance}
	return NewApplicationService(applicationRepo, jobRepo, gateway), applicationRepo, jobRepo, gateway
}

func TestApply_ChargesBaseCostPlusBid(t *testing.T) {
	service, _, jobRepo, gateway := newApplicationServiceUnderTest(10)
	jobRepo.put(newOpenJob("job-1", "owner"))

	response, err := service.Apply(nil, "worker", &dto.CreateApplicationRequest{
		JobID:    "job-1",
		CoinsBid: 3,
	})
	require.NoError(t, err)

	// 1 монета за отклик + 3 ставки.
	assert.Equal(t, 6, gateway.balance)
	assert.Equal(t, []int{4}, gateway.charges)
	assert.Equal(t, []string{models.CoinReasonApply}, gateway.reasons)
	assert.Equal(t, 3, response.CoinsBid)
	assert.Equal(t, string(models.ApplicationStatusPending), response.Status)
}

func TestApply_InsufficientCoinsLeavesNoTrace(t *testing.T) {
	service, applicationRepo, jobRepo, gateway := newApplicationServiceUnderTest(2)
	jobRepo.put(newOpenJob("job-1", "owner"))

	_, err := service.Apply(nil, "worker", &dto.CreateApplicationRequest{
		JobID:    "job-1",
		CoinsBid: 2,
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInsufficientCoins, appErr.Code)
	assert.Equal(t, 402, appErr.HTTPCode)

	shortage, ok := appErr.Details.(apperrors.CoinShortage)
	require.True(t, ok)
	assert.Equal(t, 3, shortage.CoinsNeeded)
	assert.Equal(t, 2, shortage.CoinsAvailable)

	// Баланс не тронут, отклик не создан.
	assert.Equal(t, 2, gateway.balance)
	assert.Empty(t, applicationRepo.applications)
}

func TestApply_DuplicateDoesNotCharge(t *testing.T) {
	service, _, jobRepo, gateway := newApplicationServiceUnderTest(20)
	jobRepo.put(newOpenJob("job-1", "owner"))

	_, err := service.Apply(nil, "worker", &dto.CreateApplicationRequest{JobID: "job-1"})
	require.NoError(t, err)
	balanceAfterFirst := gateway.balance

	_, err = service.Apply(nil, "worker", &dto.CreateApplicationRequest{JobID: "job-1", CoinsBid: 5})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrAlreadyApplied))
	assert.Equal(t, balanceAfterFirst, gateway.balance)
}

func TestApply_OwnJobRejected(t *testing.T) {
	service, _, jobRepo, _ := newApplicationServiceUnderTest(20)
	jobRepo.put(newOpenJob("job-1", "owner"))

	_, err := service.Apply(nil, "owner", &dto.CreateApplicationRequest{JobID: "job-1"})
	require.Error(t, err)
}

func TestApply_ExpiredJobRejected(t *testing.T) {
	service, _, jobRepo, gateway := newApplicationServiceUnderTest(20)
	job := newOpenJob("job-1", "owner")
	job.ExpiresAt = time.Now().Add(-time.Hour)
	jobRepo.put(job)

	_, err := service.Apply(nil, "worker", &dto.CreateApplicationRequest{JobID: "job-1"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrJobExpired))
	assert.Equal(t, 20, gateway.balance)
}

func TestIncreaseBid_SpendsExactlyAdditionalCoins(t *testing.T) {
	// Сценарий: баланс 10, отклик со ставкой 0 (минус 1), доплата 3 (минус 3).
	service, applicationRepo, jobRepo, gateway := newApplicationServiceUnderTest(10)
	jobRepo.put(newOpenJob("job-1", "owner"))

	response, err := service.Apply(nil, "worker", &dto.CreateApplicationRequest{JobID: "job-1"})
	require.NoError(t, err)
	assert.Equal(t, 9, gateway.balance)

	updated, err := service.IncreaseBid(nil, response.ID, "worker", &dto.IncreaseBidRequest{AdditionalCoins: 3})
	require.NoError(t, err)

	assert.Equal(t, 6, gateway.balance)
	assert.Equal(t, 3, updated.CoinsBid)
	assert.Equal(t, models.CoinReasonIncreaseBid, gateway.reasons[len(gateway.reasons)-1])

	stored := applicationRepo.applications[response.ID]
	assert.Equal(t, 3, stored.CoinsBid)
}

func TestIncreaseBid_OnlyApplicantCanRaise(t *testing.T) {
	service, _, jobRepo, _ := newApplicationServiceUnderTest(20)
	jobRepo.put(newOpenJob("job-1", "owner"))

	response, err := service.Apply(nil, "worker", &dto.CreateApplicationRequest{JobID: "job-1"})
	require.NoError(t, err)

	_, err = service.IncreaseBid(nil, response.ID, "someone-else", &dto.IncreaseBidRequest{AdditionalCoins: 1})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInsufficientPermissions))
}

func TestGetRankings_OrderAndAccess(t *testing.T) {
	service, applicationRepo, jobRepo, _ := newApplicationServiceUnderTest(100)
	jobRepo.put(newOpenJob("job-1", "owner"))

	base := time.Now().Add(-time.Hour)
	for i, bid := range []int{0, 4, 4, 1} {
		app := &models.Application{
			JobID:       "job-1",
			ApplicantID: string(rune('a' + i)),
			CoinsBid:    bid,
		}
		app.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, applicationRepo.Create(nil, app))
	}

	rankings, err := service.GetRankings(nil, "job-1", "owner", models.UserRoleUser)
	require.NoError(t, err)
	require.Equal(t, 4, rankings.Total)

	// Две ставки по 4: раньше поданная выше.
	assert.Equal(t, "b", rankings.Applications[0].ApplicantID)
	assert.Equal(t, "c", rankings.Applications[1].ApplicantID)
	assert.Equal(t, "d", rankings.Applications[2].ApplicantID)
	assert.Equal(t, "a", rankings.Applications[3].ApplicantID)
	assert.Equal(t, 1, rankings.Applications[0].Rank)
	assert.False(t, rankings.Applications[3].IsBidding)

	// Посторонний не видит ранжирование.
	_, err = service.GetRankings(nil, "job-1", "stranger", models.UserRoleUser)
	require.Error(t, err)

	// Модератор видит.
	_, err = service.GetRankings(nil, "job-1", "stranger", models.UserRoleModerator)
	require.NoError(t, err)
}
