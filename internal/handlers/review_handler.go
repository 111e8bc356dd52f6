package handlers

import (
	"net/http"

	"jigz_backend/internal/middleware"
	"jigz_backend/internal/services"
	"jigz_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService *services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/reviews")
	{
		public.GET("/users/:userId", h.GetUserReviews)
	}

	reviews := r.Group("/reviews")
	reviews.Use(middleware.AuthMiddleware())
	{
		reviews.POST("", h.CreateReview)
	}
}

// @Summary Оставить отзыв по завершенному заданию
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReviewRequest true "Отзыв"
// @Success 201 {object} dto.ReviewResponse
// @Failure 409 {object} apperrors.AppError "Отзыв уже оставлен"
// @Router /reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	review, err := h.reviewService.CreateReview(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// @Summary Отзывы о пользователе
// @Tags reviews
// @Produce json
// @Param userId path string true "ID пользователя"
// @Success 200 {object} dto.ReviewListResponse
// @Router /reviews/users/{userId} [get]
func (h *ReviewHandler) GetUserReviews(c *gin.Context) {
	page, limit := ParsePagination(c)

	reviews, err := h.reviewService.ListUserReviews(h.GetDB(c), c.Param("userId"), limit, (page-1)*limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}
