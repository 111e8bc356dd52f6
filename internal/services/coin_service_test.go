package services

import (
	"errors"
	"testing"
	"time"

	"jigz_backend/internal/models"
	"jigz_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"jigz_backend/pkg/apperrors"
)

func TestBaselineFor(t *testing.T) {
	assert.Equal(t, 20, BaselineFor(models.UserRoleUser))
	assert.Equal(t, 100, BaselineFor(models.UserRoleAdmin))
	assert.Equal(t, 100, BaselineFor(models.UserRoleModerator))
}

func TestResetDue(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	assert.False(t, ResetDue(now.AddDate(0, 0, -29), now))
	assert.True(t, ResetDue(now.AddDate(0, 0, -30), now))
	assert.True(t, ResetDue(now.AddDate(0, 0, -90), now))
	assert.False(t, ResetDue(now, now))
}

func TestDaysUntilReset(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	// Сброс был только что: до следующего ровно 30 дней.
	assert.Equal(t, 30, daysUntilReset(now, now))

	// Неполные сутки округляются вверх.
	assert.Equal(t, 1, daysUntilReset(now.Add(-29*24*time.Hour-23*time.Hour), now))

	// Срок истек.
	assert.Equal(t, 0, daysUntilReset(now.AddDate(0, 0, -31), now))
}

// fakeCoinRepo - леджер в памяти для прогона настоящего CoinService.
type fakeCoinRepo struct {
	users        map[string]*models.User
	transactions []models.CoinTransaction
}

func newFakeCoinRepo() *fakeCoinRepo {
	return &fakeCoinRepo{users: make(map[string]*models.User)}
}

func (r *fakeCoinRepo) put(user *models.User) {
	copied := *user
	r.users[user.ID] = &copied
}

type coinRepoState struct {
	users        map[string]models.User
	transactions []models.CoinTransaction
}

func (r *fakeCoinRepo) snapshot() coinRepoState {
	state := coinRepoState{users: make(map[string]models.User)}
	for id, user := range r.users {
		state.users[id] = *user
	}
	state.transactions = append(state.transactions, r.transactions...)
	return state
}

func (r *fakeCoinRepo) restore(state coinRepoState) {
	r.users = make(map[string]*models.User)
	for id, user := range state.users {
		copied := user
		r.users[id] = &copied
	}
	r.transactions = state.transactions
}

func (r *fakeCoinRepo) GetForUpdate(tx *gorm.DB, userID string) (*models.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeCoinRepo) UpdateBalance(tx *gorm.DB, userID string, balance int, lastReset *time.Time) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Coins = balance
	if lastReset != nil {
		user.LastCoinReset = *lastReset
	}
	return nil
}

func (r *fakeCoinRepo) LogTransaction(tx *gorm.DB, entry *models.CoinTransaction) error {
	r.transactions = append(r.transactions, *entry)
	return nil
}

func (r *fakeCoinRepo) ListTransactions(db *gorm.DB, userID string, limit int) ([]models.CoinTransaction, error) {
	var entries []models.CoinTransaction
	for _, entry := range r.transactions {
		if entry.UserID == userID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (r *fakeCoinRepo) resetRows(userID string) int {
	count := 0
	for _, entry := range r.transactions {
		if entry.UserID == userID && entry.Reason == models.CoinReasonMonthlyReset {
			count++
		}
	}
	return count
}

// newCoinServiceUnderTest подменяет транзакционный раннер: ошибка
// любого шага возвращает репозиторий к снимку до начала транзакции.
func newCoinServiceUnderTest() (*CoinService, *fakeCoinRepo) {
	repo := newFakeCoinRepo()
	service := NewCoinService(repo)
	service.runTx = func(db *gorm.DB, fn func(tx *gorm.DB) error) error {
		snap := repo.snapshot()
		if err := fn(db); err != nil {
			repo.restore(snap)
			return err
		}
		return nil
	}
	return service, repo
}

func putLedgerUser(repo *fakeCoinRepo, id string, coins int, lastReset time.Time) {
	user := &models.User{Role: models.UserRoleUser, Coins: coins, LastCoinReset: lastReset}
	user.ID = id
	repo.put(user)
}

func TestCharge_DebitsAndLogs(t *testing.T) {
	service, repo := newCoinServiceUnderTest()
	putLedgerUser(repo, "u1", 10, time.Now())

	fnCalled := false
	err := service.Charge(nil, "u1", 4, models.CoinReasonApply, func(tx *gorm.DB) error {
		fnCalled = true
		return nil
	})
	require.NoError(t, err)

	assert.True(t, fnCalled)
	assert.Equal(t, 6, repo.users["u1"].Coins)
	require.Len(t, repo.transactions, 1)
	assert.Equal(t, -4, repo.transactions[0].Amount)
	assert.Equal(t, 6, repo.transactions[0].BalanceAfter)
	assert.Equal(t, models.CoinReasonApply, repo.transactions[0].Reason)
}

func TestCharge_InsufficientLeavesNoJournalRow(t *testing.T) {
	service, repo := newCoinServiceUnderTest()
	putLedgerUser(repo, "u1", 2, time.Now())

	fnCalled := false
	err := service.Charge(nil, "u1", 3, models.CoinReasonPostJob, func(tx *gorm.DB) error {
		fnCalled = true
		return nil
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInsufficientCoins, appErr.Code)

	shortage, ok := appErr.Details.(apperrors.CoinShortage)
	require.True(t, ok)
	assert.Equal(t, 3, shortage.CoinsNeeded)
	assert.Equal(t, 2, shortage.CoinsAvailable)

	assert.False(t, fnCalled)
	assert.Equal(t, 2, repo.users["u1"].Coins)
	assert.Empty(t, repo.transactions)
}

func TestCharge_EntityFailureRollsBackDebit(t *testing.T) {
	service, repo := newCoinServiceUnderTest()
	putLedgerUser(repo, "u1", 10, time.Now())

	boom := errors.New("insert failed")
	err := service.Charge(nil, "u1", 3, models.CoinReasonPostJob, func(tx *gorm.DB) error {
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Списание откатилось вместе с мутацией.
	assert.Equal(t, 10, repo.users["u1"].Coins)
	assert.Empty(t, repo.transactions)
}

func TestCharge_AppliesMonthlyResetOnce(t *testing.T) {
	service, repo := newCoinServiceUnderTest()
	putLedgerUser(repo, "u1", 0, time.Now().AddDate(0, 0, -31))

	// Первый платеж: сначала сброс к базовым 20, затем списание.
	err := service.Charge(nil, "u1", 3, models.CoinReasonPostJob, nil)
	require.NoError(t, err)
	assert.Equal(t, 17, repo.users["u1"].Coins)
	assert.Equal(t, 1, repo.resetRows("u1"))
	assert.WithinDuration(t, time.Now(), repo.users["u1"].LastCoinReset, time.Minute)

	// Второй платеж в том же окне: сброс не повторяется.
	err = service.Charge(nil, "u1", 3, models.CoinReasonPostJob, nil)
	require.NoError(t, err)
	assert.Equal(t, 14, repo.users["u1"].Coins)
	assert.Equal(t, 1, repo.resetRows("u1"))
}

func TestGetBalance_ResetAppliedOnceWithinWindow(t *testing.T) {
	service, repo := newCoinServiceUnderTest()
	putLedgerUser(repo, "u1", 5, time.Now().AddDate(0, 0, -40))

	first, err := service.GetBalance(nil, "u1")
	require.NoError(t, err)
	assert.Equal(t, 20, first.Coins)
	assert.Equal(t, 20, first.Baseline)
	assert.Equal(t, 30, first.DaysUntilReset)

	second, err := service.GetBalance(nil, "u1")
	require.NoError(t, err)
	assert.Equal(t, 20, second.Coins)
	assert.Equal(t, 1, repo.resetRows("u1"))
}

func TestCredit_IsAdditive(t *testing.T) {
	service, repo := newCoinServiceUnderTest()
	putLedgerUser(repo, "u1", 7, time.Now())

	require.NoError(t, service.Credit(nil, "u1", 10, models.CoinReasonPurchase))
	assert.Equal(t, 17, repo.users["u1"].Coins)
	require.Len(t, repo.transactions, 1)
	assert.Equal(t, 10, repo.transactions[0].Amount)
	assert.Equal(t, 17, repo.transactions[0].BalanceAfter)
}
