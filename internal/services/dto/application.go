package dto

import "time"

type CreateApplicationRequest struct {
	JobID      string  `json:"jobId" binding:"required" validate:"required,uuid"`
	BidAmount  float64 `json:"bidAmount" validate:"gte=0"`
	CoinsBid   int     `json:"coinsBid" validate:"gte=0"`
	Message    string  `json:"message" validate:"max=2000"`
	Experience string  `json:"experience" validate:"max=2000"`
}

// IncreaseBidRequest - доплата монет к существующему отклику.
// Ставка только наращивается, минимум на одну монету.
type IncreaseBidRequest struct {
	AdditionalCoins int `json:"additionalCoins" binding:"required" validate:"required,gte=1"`
}

type ApplicationResponse struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	ApplicantID string    `json:"applicantId"`
	BidAmount   float64   `json:"bidAmount"`
	CoinsBid    int       `json:"coinsBid"`
	Message     string    `json:"message,omitempty"`
	Experience  string    `json:"experience,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type RankedApplicationResponse struct {
	ApplicationResponse
	Rank      int  `json:"rank"`
	IsBidding bool `json:"isBidding"`
}

type ApplicationRankingsResponse struct {
	JobID        string                      `json:"jobId"`
	Applications []RankedApplicationResponse `json:"applications"`
	Total        int                         `json:"total"`
}
