package models

import (
	"time"

	"gorm.io/datatypes"
)

// Service - листинг предлагаемой услуги. Та же форма модерации,
// статуса и истечения, что и у Job.
type Service struct {
	BaseModel
	UserID          string         `gorm:"type:uuid;not null;index" json:"userId"`
	Title           string         `gorm:"not null" json:"title"`
	Description     string         `gorm:"not null" json:"description"`
	Category        string         `gorm:"index" json:"category"`
	Location        string         `gorm:"index" json:"location"`
	MinBudget       float64        `json:"minBudget"`
	MaxBudget       float64        `json:"maxBudget"`
	BudgetType      BudgetType     `gorm:"type:varchar(10);default:'fixed'" json:"budgetType"`
	Currency        string         `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	ExperienceLevel string         `json:"experienceLevel"`
	Skills          datatypes.JSON `gorm:"type:jsonb" json:"skills"`
	Status          JobStatus      `gorm:"type:varchar(20);default:'open';index" json:"status"`
	ApprovalStatus  ApprovalStatus `gorm:"type:varchar(20);default:'pending';index" json:"approvalStatus"`
	ExpiresAt       time.Time      `gorm:"index" json:"expiresAt"`
	Views           int            `json:"views"`
}

// ServiceRequest - заявка клиента на услугу (аналог Application для Job).
type ServiceRequest struct {
	BaseModel
	ServiceID   string            `gorm:"type:uuid;not null;uniqueIndex:idx_service_requests_service_requester" json:"serviceId"`
	RequesterID string            `gorm:"type:uuid;not null;uniqueIndex:idx_service_requests_service_requester" json:"requesterId"`
	Message     string            `json:"message"`
	Status      ApplicationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
}
