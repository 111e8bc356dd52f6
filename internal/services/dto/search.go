package dto

// JobSearchRequest парсится из query-строки GET /search/jobs.
type JobSearchRequest struct {
	Query           string   `form:"query"`
	Category        string   `form:"category"`
	Location        string   `form:"location"`
	ExperienceLevel string   `form:"experienceLevel" validate:"omitempty,oneof=entry intermediate expert"`
	MinBudget       *float64 `form:"minBudget" validate:"omitempty,gte=0"`
	MaxBudget       *float64 `form:"maxBudget" validate:"omitempty,gte=0"`
	SortBy          string   `form:"sortBy" validate:"omitempty,oneof=relevance date budget_low budget_high"`
	SortOrder       string   `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Page            int      `form:"page" validate:"omitempty,gte=1"`
	Limit           int      `form:"limit" validate:"omitempty,gte=1,lte=100"`
}

type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

// SearchMeta - диагностика выполнения запроса.
type SearchMeta struct {
	ExecutionTimeMs int64 `json:"executionTimeMs"`
	FromCache       bool  `json:"fromCache"`
}

type JobSearchResponse struct {
	Jobs       []JobResponse `json:"jobs"`
	Pagination Pagination    `json:"pagination"`
	SearchMeta SearchMeta    `json:"searchMeta"`
}
