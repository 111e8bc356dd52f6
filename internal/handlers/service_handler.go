package handlers

import (
	"net/http"

	"jigz_backend/internal/middleware"
	"jigz_backend/internal/models"
	"jigz_backend/internal/services"
	"jigz_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ServiceHandler struct {
	*BaseHandler
	serviceListingService *services.ServiceListingService
}

func NewServiceHandler(base *BaseHandler, serviceListingService *services.ServiceListingService) *ServiceHandler {
	return &ServiceHandler{
		BaseHandler:           base,
		serviceListingService: serviceListingService,
	}
}

func (h *ServiceHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/services")
	{
		public.GET("", h.ListServices)
		public.GET("/:serviceId", h.GetService)
	}

	services := r.Group("/services")
	services.Use(middleware.AuthMiddleware())
	{
		services.POST("", h.CreateService)
		services.GET("/my", h.ListMyServices)
		services.POST("/:serviceId/request", h.RequestService)
	}

	admin := r.Group("/admin/services")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleModerator))
	{
		admin.POST("/:serviceId/approve", h.ApproveService)
		admin.POST("/:serviceId/reject", h.RejectService)
	}
}

// @Summary Опубликовать услугу
// @Description Стоит 20 монет. Самое дорогое действие платформы.
// @Tags services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateServiceRequest true "Услуга"
// @Success 201 {object} dto.ServiceResponse
// @Failure 402 {object} apperrors.AppError "Недостаточно монет"
// @Router /services [post]
func (h *ServiceHandler) CreateService(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateServiceRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	service, err := h.serviceListingService.CreateService(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) GetService(c *gin.Context) {
	service, err := h.serviceListingService.GetService(h.GetDB(c), c.Param("serviceId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, service)
}

func (h *ServiceHandler) ListServices(c *gin.Context) {
	page, limit := ParsePagination(c)

	services, err := h.serviceListingService.ListServices(h.GetDB(c), c.Query("category"), page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) ListMyServices(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	services, err := h.serviceListingService.ListMyServices(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) RequestService(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateServiceRequestRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	request, err := h.serviceListingService.RequestService(h.GetDB(c), c.Param("serviceId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

func (h *ServiceHandler) ApproveService(c *gin.Context) {
	if err := h.serviceListingService.ApproveService(h.GetDB(c), c.Param("serviceId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ServiceHandler) RejectService(c *gin.Context) {
	if err := h.serviceListingService.RejectService(h.GetDB(c), c.Param("serviceId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
