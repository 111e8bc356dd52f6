package handlers

import (
	"net/http/httptest"
	"testing"

	"jigz_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobSearchRequest_BindsQueryString(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET",
		"/search/jobs?query=plumber&category=plumbing&location=Brooklyn&minBudget=50&maxBudget=200&sortBy=date&sortOrder=asc&page=2&limit=30", nil)

	var req dto.JobSearchRequest
	require.NoError(t, c.ShouldBindQuery(&req))

	// Текстовый фильтр приходит в параметре query.
	assert.Equal(t, "plumber", req.Query)
	assert.Equal(t, "plumbing", req.Category)
	assert.Equal(t, "Brooklyn", req.Location)
	require.NotNil(t, req.MinBudget)
	assert.Equal(t, 50.0, *req.MinBudget)
	require.NotNil(t, req.MaxBudget)
	assert.Equal(t, 200.0, *req.MaxBudget)
	assert.Equal(t, "date", req.SortBy)
	assert.Equal(t, "asc", req.SortOrder)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, 30, req.Limit)
}
