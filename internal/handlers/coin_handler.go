package handlers

import (
	"net/http"

	"jigz_backend/internal/middleware"
	"jigz_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type CoinHandler struct {
	*BaseHandler
	coinService *services.CoinService
}

func NewCoinHandler(base *BaseHandler, coinService *services.CoinService) *CoinHandler {
	return &CoinHandler{
		BaseHandler: base,
		coinService: coinService,
	}
}

func (h *CoinHandler) RegisterRoutes(r *gin.RouterGroup) {
	user := r.Group("/user")
	user.Use(middleware.AuthMiddleware())
	{
		user.GET("/coins", h.GetBalance)
		user.GET("/coins/history", h.GetHistory)
	}
}

// @Summary Текущий монетный баланс
// @Tags coins
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CoinBalanceResponse
// @Router /user/coins [get]
func (h *CoinHandler) GetBalance(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	balance, err := h.coinService.GetBalance(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}

// @Summary История движения монет
// @Tags coins
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Максимум записей (по умолчанию 50)"
// @Success 200 {object} dto.CoinHistoryResponse
// @Router /user/coins/history [get]
func (h *CoinHandler) GetHistory(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	limit := ParseQueryInt(c, "limit", 50)

	history, err := h.coinService.GetHistory(h.GetDB(c), userID, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}
