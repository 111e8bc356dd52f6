package models

import (
	"time"

	"gorm.io/datatypes"
)

type Job struct {
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
	ExperienceLevel string         `gorm:"index" json:"experienceLevel"`
	Skills          datatypes.JSON `gorm:"type:jsonb" json:"skills"`
	Status          JobStatus      `gorm:"type:varchar(20);default:'open';index" json:"status"`
	ApprovalStatus  ApprovalStatus `gorm:"type:varchar(20);default:'pending';index" json:"approvalStatus"`
	ExpiresAt       time.Time      `gorm:"index" json:"expiresAt"`
	Views           int            `json:"views"`
}

// IsSearchable - публично видны только одобренные, открытые
// и не просроченные вакансии. Фильтр на чтении является источником
// истины, фоновый sweep лишь денормализует статус.
func (j *Job) IsSearchable(now time.Time) bool {
	return j.Status == JobStatusOpen &&
		j.ApprovalStatus == ApprovalStatusApproved &&
		j.ExpiresAt.After(now)
}
