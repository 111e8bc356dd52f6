package models

type Application struct {
	BaseModel
	JobID       string  `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_applicant" json:"jobId"`
	ApplicantID string  `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_applicant" json:"applicantId"`
	BidAmount   float64 `json:"bidAmount"`

	// Приоритетная ставка. Может только расти, списывается при создании
	// (1 + CoinsBid) и при каждом повышении.
	CoinsBid int `gorm:"not null;default:0" json:"coinsBid"`

	Message    string            `json:"message"`
	Experience string            `json:"experience"`
	Status     ApplicationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
}

// RankedApplication - отклик с вычисленной позицией в списке.
// Rank пересчитывается на каждое чтение, не хранится.
type RankedApplication struct {
	Application
	Rank      int  `json:"rank"`
	IsBidding bool `json:"isBidding"`
}
