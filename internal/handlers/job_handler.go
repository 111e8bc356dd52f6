package handlers

import (
	"net/http"

	"jigz_backend/internal/middleware"
	"jigz_backend/internal/models"
	"jigz_backend/internal/services"
	"jigz_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService *services.JobService
}

func NewJobHandler(base *BaseHandler, jobService *services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
	}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Публичное чтение; авторизация опциональна, от нее зависит
	// видимость немодерированных заданий и счетчик просмотров.
	public := r.Group("/jobs")
	public.Use(middleware.OptionalAuthMiddleware())
	{
		public.GET("/:jobId", h.GetJob)
	}

	jobs := r.Group("/jobs")
	jobs.Use(middleware.AuthMiddleware())
	{
		jobs.POST("", h.CreateJob)
		jobs.GET("/my", h.ListMyJobs)
		jobs.PUT("/:jobId", h.UpdateJob)
		jobs.DELETE("/:jobId", h.DeleteJob)
		jobs.POST("/:jobId/extend", h.ExtendJob)
		jobs.POST("/:jobId/complete", h.CompleteJob)
	}

	admin := r.Group("/admin/jobs")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleModerator))
	{
		admin.GET("/pending", h.ListPendingJobs)
		admin.POST("/:jobId/approve", h.ApproveJob)
		admin.POST("/:jobId/reject", h.RejectJob)
	}
}

// @Summary Опубликовать задание
// @Description Стоит 3 монеты. Списание и создание атомарны.
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateJobRequest true "Задание"
// @Success 201 {object} dto.JobResponse
// @Failure 402 {object} apperrors.AppError "Недостаточно монет"
// @Router /jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

// @Summary Получить задание
// @Tags jobs
// @Produce json
// @Param jobId path string true "ID задания"
// @Success 200 {object} dto.JobResponse
// @Router /jobs/{jobId} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	requesterID, requesterRole := GetRequesterIdentity(c)

	job, err := h.jobService.GetJob(h.GetDB(c), c.Param("jobId"), requesterID, requesterRole)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) ListMyJobs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListMyJobs(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// @Summary Редактировать задание
// @Description Стоит 1 монету. Доступно владельцу открытого задания.
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "ID задания"
// @Param request body dto.UpdateJobRequest true "Изменения"
// @Success 200 {object} dto.JobResponse
// @Failure 402 {object} apperrors.AppError "Недостаточно монет"
// @Router /jobs/{jobId} [put]
func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJob(h.GetDB(c), c.Param("jobId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	_, role := GetRequesterIdentity(c)

	if err := h.jobService.DeleteJob(h.GetDB(c), c.Param("jobId"), userID, role); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Продлить публикацию задания
// @Description Стоит 2 монеты, добавляет 30 дней к сроку публикации.
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "ID задания"
// @Success 200 {object} dto.JobResponse
// @Failure 402 {object} apperrors.AppError "Недостаточно монет"
// @Router /jobs/{jobId}/extend [post]
func (h *JobHandler) ExtendJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	job, err := h.jobService.ExtendJob(h.GetDB(c), c.Param("jobId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) CompleteJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.CompleteJob(h.GetDB(c), c.Param("jobId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Moderation

func (h *JobHandler) ListPendingJobs(c *gin.Context) {
	page, limit := ParsePagination(c)

	jobs, err := h.jobService.ListPendingJobs(h.GetDB(c), limit, (page-1)*limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) ApproveJob(c *gin.Context) {
	if err := h.jobService.ApproveJob(h.GetDB(c), c.Param("jobId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *JobHandler) RejectJob(c *gin.Context) {
	var req dto.RejectJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.jobService.RejectJob(h.GetDB(c), c.Param("jobId"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
