package repositories

import (
	"errors"
	"time"

	"jigz_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CoinRepository interface {
	// GetForUpdate берет строку пользователя под row-lock (SELECT ... FOR UPDATE).
	// Должен вызываться только внутри открытой транзакции.
	GetForUpdate(tx *gorm.DB, userID string) (*models.User, error)

	// UpdateBalance пишет новый баланс; lastReset передается, когда
	// одновременно фиксируется ежемесячный сброс.
	UpdateBalance(tx *gorm.DB, userID string, balance int, lastReset *time.Time) error

	// LogTransaction добавляет запись в журнал движения монет.
	LogTransaction(tx *gorm.DB, entry *models.CoinTransaction) error

	ListTransactions(db *gorm.DB, userID string, limit int) ([]models.CoinTransaction, error)
}

type CoinRepositoryImpl struct{}

func NewCoinRepository() CoinRepository {
	return &CoinRepositoryImpl{}
}

func (r *CoinRepositoryImpl) GetForUpdate(tx *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *CoinRepositoryImpl) UpdateBalance(tx *gorm.DB, userID string, balance int, lastReset *time.Time) error {
	updates := map[string]interface{}{
		"coins":      balance,
		"updated_at": time.Now(),
	}
	if lastReset != nil {
		updates["last_coin_reset"] = *lastReset
	}

	result := tx.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *CoinRepositoryImpl) LogTransaction(tx *gorm.DB, entry *models.CoinTransaction) error {
	return tx.Create(entry).Error
}

func (r *CoinRepositoryImpl) ListTransactions(db *gorm.DB, userID string, limit int) ([]models.CoinTransaction, error) {
	var entries []models.CoinTransaction
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
