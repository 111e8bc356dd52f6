package handlers

import (
	"net/http"

	"jigz_backend/internal/services"
	"jigz_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	*BaseHandler
	searchService *services.SearchService
}

func NewSearchHandler(base *BaseHandler, searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{
		BaseHandler:   base,
		searchService: searchService,
	}
}

func (h *SearchHandler) RegisterRoutes(r *gin.RouterGroup) {
	search := r.Group("/search")
	{
		search.GET("/jobs", h.SearchJobs)
	}
}

// @Summary Поиск заданий
// @Description Фильтры комбинируются через AND. Выдача кэшируется на 30 секунд.
// @Tags search
// @Produce json
// @Param query query string false "Текст в заголовке или описании"
// @Param category query string false "Категория"
// @Param location query string false "Локация"
// @Param experienceLevel query string false "Уровень опыта" Enums(entry, intermediate, expert)
// @Param minBudget query number false "Нижняя граница бюджета"
// @Param maxBudget query number false "Верхняя граница бюджета"
// @Param sortBy query string false "Сортировка" Enums(relevance, date, budget_low, budget_high)
// @Param sortOrder query string false "Порядок" Enums(asc, desc)
// @Param page query int false "Страница (с 1)"
// @Param limit query int false "Размер страницы (максимум 100)"
// @Success 200 {object} dto.JobSearchResponse
// @Router /search/jobs [get]
func (h *SearchHandler) SearchJobs(c *gin.Context) {
	var req dto.JobSearchRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	response, err := h.searchService.SearchJobs(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
