package models

import "time"

// Стоимости действий в монетах. Отклик дополнительно включает
// выбранную пользователем приоритетную ставку (1 + coinsBid).
const (
	CoinCostPostJob      = 3
	CoinCostApply        = 1
	CoinCostEditJob      = 1
	CoinCostExtendJob    = 2
	CoinCostEndorseSkill = 5
	CoinCostPostService  = 20
)

// ExtendJobDays - на сколько дней продлевается публикация за CoinCostExtendJob.
const ExtendJobDays = 30

// Причины движения монет в журнале.
const (
	CoinReasonPostJob      = "post_job"
	CoinReasonApply        = "apply"
	CoinReasonEditJob      = "edit_job"
	CoinReasonExtendJob    = "extend_job"
	CoinReasonEndorseSkill = "endorse_skill"
	CoinReasonPostService  = "post_service"
	CoinReasonIncreaseBid  = "increase_bid"
	CoinReasonMonthlyReset = "monthly_reset"
	CoinReasonRefund       = "refund"
	CoinReasonReward       = "reward"
	CoinReasonPurchase     = "purchase"
)

// CoinTransaction - журнальная запись движения монет.
// Amount отрицательный для списаний, положительный для начислений.
type CoinTransaction struct {
	BaseModel
	UserID       string `gorm:"type:uuid;not null;index"`
	Amount       int    `gorm:"not null"`
	Reason       string `gorm:"type:varchar(30);not null"`
	BalanceAfter int    `gorm:"not null"`
}

// CoinPurchase - разовое начисление монет внешним биллингом.
// Ядро только читает эти записи, оплата - внешний коллаборатор.
type CoinPurchase struct {
	BaseModel
	UserID    string `gorm:"type:uuid;not null;index"`
	Coins     int    `gorm:"not null"`
	InvoiceID string `gorm:"uniqueIndex"`
	Status    string `gorm:"type:varchar(20);default:'pending'"`
}

// CoinSubscription - регулярное начисление монет (внешний биллинг).
type CoinSubscription struct {
	BaseModel
	UserID        string     `gorm:"type:uuid;not null;index"`
	CoinsPerMonth int        `gorm:"not null"`
	Status        string     `gorm:"type:varchar(20);default:'active'"`
	CancelledAt   *time.Time
}
