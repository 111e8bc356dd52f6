package handlers

import (
	"net/http"

	"jigz_backend/internal/middleware"
	"jigz_backend/internal/models"
	"jigz_backend/internal/services"
	"jigz_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService *services.UserService
}

func NewUserHandler(base *BaseHandler, userService *services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/users")
	{
		public.GET("/:userId", h.GetProfile)
	}

	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.POST("/:userId/endorse", h.EndorseSkill)
	}

	admin := r.Group("/admin/users")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("", h.ListUsers)
		admin.PUT("/:userId/status", h.UpdateStatus)
		admin.DELETE("/:userId", h.DeleteUser)
	}
}

// @Summary Публичный профиль пользователя
// @Tags users
// @Produce json
// @Param userId path string true "ID пользователя"
// @Success 200 {object} dto.UserProfileResponse
// @Router /users/{userId} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.userService.GetProfile(h.GetDB(c), c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// @Summary Подтвердить навык пользователя
// @Description Стоит 5 монет. Свои навыки подтверждать нельзя.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param request body dto.EndorseSkillRequest true "Навык"
// @Success 201 {object} dto.EndorsementResponse
// @Failure 402 {object} apperrors.AppError "Недостаточно монет"
// @Router /users/{userId}/endorse [post]
func (h *UserHandler) EndorseSkill(c *gin.Context) {
	endorserID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.EndorseSkillRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	endorsement, err := h.userService.EndorseSkill(h.GetDB(c), endorserID, c.Param("userId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, endorsement)
}

// Admin

func (h *UserHandler) ListUsers(c *gin.Context) {
	page, limit := ParsePagination(c)

	users, err := h.userService.ListUsers(h.GetDB(c), limit, (page-1)*limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateUserStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.userService.UpdateStatus(h.GetDB(c), c.Param("userId"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(h.GetDB(c), c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
