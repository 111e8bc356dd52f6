package services

import (
	"testing"
	"time"

	"jigz_backend/internal/models"
	"jigz_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPagination(t *testing.T) {
	tests := []struct {
		name    string
		page    int
		limit   int
		total   int64
		pages   int
		hasNext bool
		hasPrev bool
	}{
		{"first of three", 1, 10, 25, 3, true, false},
		{"middle page", 2, 10, 25, 3, true, true},
		{"last page", 3, 10, 25, 3, false, true},
		{"exact fit", 2, 10, 20, 2, false, true},
		{"empty result", 1, 10, 0, 0, false, false},
		{"single page", 1, 20, 7, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildPagination(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.pages, p.Pages)
			assert.Equal(t, tt.hasNext, p.HasNext)
			assert.Equal(t, tt.hasPrev, p.HasPrev)
			assert.Equal(t, tt.total, p.Total)
		})
	}
}

func TestSearchJobs_CachesRepeatedQueries(t *testing.T) {
	jobRepo := newFakeJobRepo()
	for i := 0; i < 3; i++ {
		job := newOpenJob("", "owner")
		require.NoError(t, jobRepo.Create(nil, job))
	}
	service := NewSearchService(jobRepo)

	req := &dto.JobSearchRequest{Query: "sink"}

	first, err := service.SearchJobs(nil, req)
	require.NoError(t, err)
	assert.False(t, first.SearchMeta.FromCache)
	assert.Equal(t, int64(3), first.Pagination.Total)

	second, err := service.SearchJobs(nil, req)
	require.NoError(t, err)
	assert.True(t, second.SearchMeta.FromCache)
	assert.Equal(t, first.Pagination.Total, second.Pagination.Total)

	// Другие критерии - другой ключ кэша.
	other, err := service.SearchJobs(nil, &dto.JobSearchRequest{Query: "sink", Category: "plumbing"})
	require.NoError(t, err)
	assert.False(t, other.SearchMeta.FromCache)
}

func TestSearchJobs_InvalidateCacheForcesRefetch(t *testing.T) {
	jobRepo := newFakeJobRepo()
	require.NoError(t, jobRepo.Create(nil, newOpenJob("", "owner")))
	service := NewSearchService(jobRepo)

	req := &dto.JobSearchRequest{}

	_, err := service.SearchJobs(nil, req)
	require.NoError(t, err)

	service.InvalidateCache()

	response, err := service.SearchJobs(nil, req)
	require.NoError(t, err)
	assert.False(t, response.SearchMeta.FromCache)
}

func TestSearchJobs_NormalizesDefaults(t *testing.T) {
	jobRepo := newFakeJobRepo()
	service := NewSearchService(jobRepo)

	response, err := service.SearchJobs(nil, &dto.JobSearchRequest{Page: 0, Limit: 0})
	require.NoError(t, err)

	assert.Equal(t, 1, response.Pagination.Page)
	assert.Equal(t, 20, response.Pagination.Limit)
}

func TestNormalizeCriteria_SortOrderDefaults(t *testing.T) {
	// Без явного sortOrder направление задается ключом.
	assert.Equal(t, "asc", normalizeCriteria(&dto.JobSearchRequest{SortBy: "budget_low"}).SortOrder)
	assert.Equal(t, "desc", normalizeCriteria(&dto.JobSearchRequest{SortBy: "budget_high"}).SortOrder)
	assert.Equal(t, "desc", normalizeCriteria(&dto.JobSearchRequest{SortBy: "date"}).SortOrder)

	// Явный sortOrder сохраняется как есть.
	explicit := normalizeCriteria(&dto.JobSearchRequest{SortBy: "budget_high", SortOrder: "asc"})
	assert.Equal(t, "asc", explicit.SortOrder)
}

func TestNormalizeCriteria_ClampsLimit(t *testing.T) {
	assert.Equal(t, 100, normalizeCriteria(&dto.JobSearchRequest{Limit: 250}).Limit)
	assert.Equal(t, 100, normalizeCriteria(&dto.JobSearchRequest{Limit: 100}).Limit)
	assert.Equal(t, 20, normalizeCriteria(&dto.JobSearchRequest{Limit: 0}).Limit)
}

func TestSearchJobs_ExcludesUnsearchable(t *testing.T) {
	jobRepo := newFakeJobRepo()

	open := newOpenJob("visible", "owner")
	jobRepo.put(open)

	pending := newOpenJob("pending", "owner")
	pending.ApprovalStatus = models.ApprovalStatusPending
	jobRepo.put(pending)

	expired := newOpenJob("expired", "owner")
	expired.ExpiresAt = time.Now().Add(-time.Hour)
	jobRepo.put(expired)

	service := NewSearchService(jobRepo)

	response, err := service.SearchJobs(nil, &dto.JobSearchRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(1), response.Pagination.Total)
	assert.Equal(t, "visible", response.Jobs[0].ID)
}
