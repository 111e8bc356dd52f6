package handlers

import (
	"net/http"

	"jigz_backend/internal/middleware"
	"jigz_backend/internal/models"
	"jigz_backend/internal/services"
	"jigz_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService *services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	applications := r.Group("/applications")
	applications.Use(middleware.AuthMiddleware())
	{
		applications.POST("", h.Apply)
		applications.GET("/my", h.ListMyApplications)
		applications.POST("/:applicationId/bid", h.IncreaseBid)
		applications.PUT("/:applicationId/status", h.UpdateStatus)
	}

	jobs := r.Group("/jobs")
	jobs.Use(middleware.AuthMiddleware())
	{
		jobs.GET("/:jobId/application-rankings", h.GetRankings)
	}
}

// @Summary Откликнуться на задание
// @Description Стоит 1 монету плюс приоритетная ставка coinsBid.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateApplicationRequest true "Отклик"
// @Success 201 {object} dto.ApplicationResponse
// @Failure 402 {object} apperrors.AppError "Недостаточно монет"
// @Failure 409 {object} apperrors.AppError "Уже откликались"
// @Router /applications [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	application, err := h.applicationService.Apply(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, application)
}

// @Summary Повысить ставку отклика
// @Description Доплата монет к существующему отклику, ставка только растет.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param applicationId path string true "ID отклика"
// @Param request body dto.IncreaseBidRequest true "Доплата"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 402 {object} apperrors.AppError "Недостаточно монет"
// @Router /applications/{applicationId}/bid [post]
func (h *ApplicationHandler) IncreaseBid(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.IncreaseBidRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	application, err := h.applicationService.IncreaseBid(h.GetDB(c), c.Param("applicationId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}

// @Summary Ранжированные отклики задания
// @Description Порядок: больше ставка выше, при равенстве раньше поданный выше.
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "ID задания"
// @Success 200 {object} dto.ApplicationRankingsResponse
// @Router /jobs/{jobId}/application-rankings [get]
func (h *ApplicationHandler) GetRankings(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	_, role := GetRequesterIdentity(c)

	rankings, err := h.applicationService.GetRankings(h.GetDB(c), c.Param("jobId"), userID, role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rankings)
}

func (h *ApplicationHandler) ListMyApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.ListMyApplications(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, applications)
}

type updateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required" validate:"required,oneof=accepted rejected"`
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req updateApplicationStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	err := h.applicationService.UpdateStatus(h.GetDB(c), c.Param("applicationId"), userID, models.ApplicationStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
