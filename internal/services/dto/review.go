package dto

import "time"

type CreateReviewRequest struct {
	JobID               string `json:"jobId" binding:"required" validate:"required,uuid"`
	RevieweeID          string `json:"revieweeId" binding:"required" validate:"required,uuid"`
	Kind                string `json:"kind" binding:"required" validate:"required,oneof=client_to_worker worker_to_client"`
	QualityRating       *int   `json:"qualityRating" validate:"omitempty,gte=1,lte=5"`
	CommunicationRating *int   `json:"communicationRating" validate:"omitempty,gte=1,lte=5"`
	TimelinessRating    *int   `json:"timelinessRating" validate:"omitempty,gte=1,lte=5"`
	Rating              *int   `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Comment             string `json:"comment" validate:"max=2000"`
}

type ReviewResponse struct {
	ID                  string    `json:"id"`
	JobID               string    `json:"jobId"`
	ReviewerID          string    `json:"reviewerId"`
	RevieweeID          string    `json:"revieweeId"`
	Kind                string    `json:"kind"`
	QualityRating       *int      `json:"qualityRating,omitempty"`
	CommunicationRating *int      `json:"communicationRating,omitempty"`
	TimelinessRating    *int      `json:"timelinessRating,omitempty"`
	Rating              float64   `json:"rating"`
	Comment             string    `json:"comment,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

type ReviewListResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	Total         int64            `json:"total"`
	AverageRating float64          `json:"averageRating"`
}
