package dto

import "time"

type CreateJobRequest struct {
	Title           string   `json:"title" binding:"required" validate:"required,min=5,max=200"`
	Description     string   `json:"description" binding:"required" validate:"required,min=20"`
	Category        string   `json:"category" binding:"required" validate:"required"`
	Location        string   `json:"location" binding:"required" validate:"required"`
	MinBudget       float64  `json:"minBudget" validate:"gte=0"`
	MaxBudget       float64  `json:"maxBudget" validate:"gtefield=MinBudget"`
	BudgetType      string   `json:"budgetType" binding:"required" validate:"required,oneof=fixed hourly"`
	Currency        string   `json:"currency" binding:"required" validate:"required,currency_code"`
	ExperienceLevel string   `json:"experienceLevel" validate:"omitempty,oneof=entry intermediate expert"`
	Skills          []string `json:"skills"`
}

type UpdateJobRequest struct {
	Title           *string  `json:"title" validate:"omitempty,min=5,max=200"`
	Description     *string  `json:"description" validate:"omitempty,min=20"`
	Category        *string  `json:"category"`
	Location        *string  `json:"location"`
	MinBudget       *float64 `json:"minBudget" validate:"omitempty,gte=0"`
	MaxBudget       *float64 `json:"maxBudget" validate:"omitempty,gte=0"`
	ExperienceLevel *string  `json:"experienceLevel" validate:"omitempty,oneof=entry intermediate expert"`
	Skills          []string `json:"skills"`
}

type JobResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Location        string    `json:"location"`
	MinBudget       float64   `json:"minBudget"`
	MaxBudget       float64   `json:"maxBudget"`
	BudgetType      string    `json:"budgetType"`
	Currency        string    `json:"currency"`
	ExperienceLevel string    `json:"experienceLevel,omitempty"`
	Skills          []string  `json:"skills"`
	Status          string    `json:"status"`
	ApprovalStatus  string    `json:"approvalStatus"`
	Views           int       `json:"views"`
	ExpiresAt       time.Time `json:"expiresAt"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type JobListResponse struct {
	Jobs []JobResponse `json:"jobs"`
}

type RejectJobRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}
