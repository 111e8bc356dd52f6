package services

import (
	"time"

	"jigz_backend/internal/config"
	"jigz_backend/internal/logger"
	"jigz_backend/internal/models"
	"jigz_backend/internal/repositories"
	"jigz_backend/internal/services/dto"

	"gorm.io/gorm"
	"jigz_backend/pkg/apperrors"
)

// CoinGateway - точка входа для всех платных действий.
// Charge списывает монеты и выполняет мутацию сущности в одной
// транзакции: при ошибке мутации списание откатывается целиком.
type CoinGateway interface {
	Charge(db *gorm.DB, userID string, cost int, reason string, fn func(tx *gorm.DB) error) error
}

type CoinService struct {
	coinRepo repositories.CoinRepository

	// runTx выполняет fn в транзакции БД.
	runTx func(db *gorm.DB, fn func(tx *gorm.DB) error) error
}

func NewCoinService(coinRepo repositories.CoinRepository) *CoinService {
	return &CoinService{
		coinRepo: coinRepo,
		runTx: func(db *gorm.DB, fn func(tx *gorm.DB) error) error {
			return db.Transaction(fn)
		},
	}
}

// BaselineFor возвращает месячный базовый баланс для роли.
func BaselineFor(role models.UserRole) int {
	cfg := config.GetConfig()
	if role == models.UserRoleAdmin || role == models.UserRoleModerator {
		return cfg.Coins.AdminBaseline
	}
	return cfg.Coins.UserBaseline
}

// ResetDue сообщает, истек ли месячный цикл с момента прошлого сброса.
func ResetDue(lastReset time.Time, now time.Time) bool {
	cfg := config.GetConfig()
	return now.Sub(lastReset) >= time.Duration(cfg.Coins.ResetDays)*24*time.Hour
}

func daysUntilReset(lastReset time.Time, now time.Time) int {
	cfg := config.GetConfig()
	next := lastReset.Add(time.Duration(cfg.Coins.ResetDays) * 24 * time.Hour)
	remaining := next.Sub(now)
	if remaining <= 0 {
		return 0
	}
	// Округляем вверх: неполные сутки считаются днем.
	return int((remaining + 24*time.Hour - 1) / (24 * time.Hour))
}

// GetBalance возвращает баланс пользователя, предварительно применив
// ленивый месячный сброс, если его срок наступил.
func (s *CoinService) GetBalance(db *gorm.DB, userID string) (*dto.CoinBalanceResponse, error) {
	var response *dto.CoinBalanceResponse

	err := s.runTx(db, func(tx *gorm.DB) error {
		user, err := s.coinRepo.GetForUpdate(tx, userID)
		if err != nil {
			return err
		}

		user, err = s.applyResetIfDue(tx, user)
		if err != nil {
			return err
		}

		response = &dto.CoinBalanceResponse{
			Coins:          user.Coins,
			Baseline:       BaselineFor(user.Role),
			LastReset:      user.LastCoinReset,
			DaysUntilReset: daysUntilReset(user.LastCoinReset, time.Now()),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

func (s *CoinService) GetHistory(db *gorm.DB, userID string, limit int) (*dto.CoinHistoryResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	entries, err := s.coinRepo.ListTransactions(db, userID, limit)
	if err != nil {
		return nil, err
	}

	response := &dto.CoinHistoryResponse{
		Transactions: make([]dto.CoinTransactionResponse, 0, len(entries)),
	}
	for _, entry := range entries {
		response.Transactions = append(response.Transactions, dto.CoinTransactionResponse{
			ID:           entry.ID,
			Amount:       entry.Amount,
			Reason:       entry.Reason,
			BalanceAfter: entry.BalanceAfter,
			CreatedAt:    entry.CreatedAt,
		})
	}
	return response, nil
}

// Charge - единственный путь списания монет. Списание, запись в журнал
// и мутация fn выполняются в одной транзакции БД: сбой на любом шаге
// откатывает все, монеты пользователя не теряются.
func (s *CoinService) Charge(db *gorm.DB, userID string, cost int, reason string, fn func(tx *gorm.DB) error) error {
	if cost < 0 {
		return apperrors.InternalError(nil).WithDetails("negative charge amount")
	}

	return s.runTx(db, func(tx *gorm.DB) error {
		user, err := s.coinRepo.GetForUpdate(tx, userID)
		if err != nil {
			return err
		}

		user, err = s.applyResetIfDue(tx, user)
		if err != nil {
			return err
		}

		if user.Coins < cost {
			return apperrors.ErrInsufficientCoins(cost, user.Coins)
		}

		if cost > 0 {
			newBalance := user.Coins - cost
			if err := s.coinRepo.UpdateBalance(tx, userID, newBalance, nil); err != nil {
				return err
			}
			if err := s.coinRepo.LogTransaction(tx, &models.CoinTransaction{
				UserID:       userID,
				Amount:       -cost,
				Reason:       reason,
				BalanceAfter: newBalance,
			}); err != nil {
				return err
			}
		}

		if fn != nil {
			return fn(tx)
		}
		return nil
	})
}

// Credit начисляет монеты. Начисление аддитивно и не зависит от
// месячного цикла.
func (s *CoinService) Credit(db *gorm.DB, userID string, amount int, reason string) error {
	if amount <= 0 {
		return apperrors.InternalError(nil).WithDetails("non-positive credit amount")
	}

	return s.runTx(db, func(tx *gorm.DB) error {
		user, err := s.coinRepo.GetForUpdate(tx, userID)
		if err != nil {
			return err
		}

		newBalance := user.Coins + amount
		if err := s.coinRepo.UpdateBalance(tx, userID, newBalance, nil); err != nil {
			return err
		}
		return s.coinRepo.LogTransaction(tx, &models.CoinTransaction{
			UserID:       userID,
			Amount:       amount,
			Reason:       reason,
			BalanceAfter: newBalance,
		})
	})
}

// applyResetIfDue устанавливает базовый баланс роли, если месячный цикл
// истек. Вызывается под row-lock, поэтому повторный вызов идемпотентен.
func (s *CoinService) applyResetIfDue(tx *gorm.DB, user *models.User) (*models.User, error) {
	now := time.Now()
	if !ResetDue(user.LastCoinReset, now) {
		return user, nil
	}

	baseline := BaselineFor(user.Role)
	if err := s.coinRepo.UpdateBalance(tx, user.ID, baseline, &now); err != nil {
		return nil, err
	}
	if err := s.coinRepo.LogTransaction(tx, &models.CoinTransaction{
		UserID:       user.ID,
		Amount:       baseline - user.Coins,
		Reason:       models.CoinReasonMonthlyReset,
		BalanceAfter: baseline,
	}); err != nil {
		return nil, err
	}

	logger.Info("monthly coin reset applied", "user_id", user.ID, "baseline", baseline)

	user.Coins = baseline
	user.LastCoinReset = now
	return user, nil
}
