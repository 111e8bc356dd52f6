package dto

import "time"

// CoinBalanceResponse - ответ GET /user/coins.
type CoinBalanceResponse struct {
	Coins          int       `json:"coins"`
	Baseline       int       `json:"baseline"`
	LastReset      time.Time `json:"lastReset"`
	DaysUntilReset int       `json:"daysUntilReset"`
}

type CoinTransactionResponse struct {
	ID           string    `json:"id"`
	Amount       int       `json:"amount"`
	Reason       string    `json:"reason"`
	BalanceAfter int       `json:"balanceAfter"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CoinHistoryResponse struct {
	Transactions []CoinTransactionResponse `json:"transactions"`
}
