package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/authz"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 注文ステータス遷移（管理者のみ）。
type AdminOrderHandler struct {
	uc *usecase.OrderStatusUsecase
}

func NewAdminOrderHandler(uc *usecase.OrderStatusUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.ActiveUserGuard(userRepo))
	g.Use(middleware.RequireOperation(authz.OpTransitionOrder))

	g.POST("/:id/complete-order", h.complete)
	g.POST("/:id/cancel-order", h.cancel)
	g.POST("/:id/set-pending", h.setPending)
}

func (h *AdminOrderHandler) complete(c echo.Context) error {
	return h.transition(c, model.OrderStatusCompleted, "Order status completed successfully")
}

func (h *AdminOrderHandler) cancel(c echo.Context) error {
	return h.transition(c, model.OrderStatusCancelled, "Order status cancelled successfully")
}

func (h *AdminOrderHandler) setPending(c echo.Context) error {
	return h.transition(c, model.OrderStatusPending, "Order status pending successfully")
}

func (h *AdminOrderHandler) transition(c echo.Context, to model.OrderStatus, message string) error {
	p, ok := getPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Transition(c.Request().Context(), p, orderID, to); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: message})
}
