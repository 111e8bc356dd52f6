package models

type Review struct {
	BaseModel
	JobID      string     `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_job_reviewer_reviewee" json:"jobId"`
	ReviewerID string     `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_job_reviewer_reviewee" json:"reviewerId"`
	RevieweeID string     `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_job_reviewer_reviewee;index" json:"revieweeId"`
	Kind       ReviewKind `gorm:"type:varchar(20);not null" json:"kind"`

	// Под-оценки заполняются только для client_to_worker,
	// Rating для него - их среднее, округленное до сотых.
	QualityRating       *int    `gorm:"check:quality_rating >= 1 AND quality_rating <= 5" json:"qualityRating,omitempty"`
	CommunicationRating *int    `gorm:"check:communication_rating >= 1 AND communication_rating <= 5" json:"communicationRating,omitempty"`
	TimelinessRating    *int    `gorm:"check:timeliness_rating >= 1 AND timeliness_rating <= 5" json:"timelinessRating,omitempty"`
	Rating              float64 `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`

	Comment string `json:"comment"`
}
