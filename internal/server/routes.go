package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	userRepo repository.UserRepository,
	productH *handler.ProductHandler,
	adminProductH *handler.AdminProductHandler,
	orderH *handler.OrderHandler,
	adminOrderH *handler.AdminOrderHandler,
	reportH *handler.ReportHandler,
	adminAuditH *handler.AdminAuditHandler,
) {
	productH.RegisterRoutes(e, cfg, userRepo)
	adminProductH.RegisterRoutes(e, cfg, userRepo)
	orderH.RegisterRoutes(e, cfg, userRepo)
	adminOrderH.RegisterRoutes(e, cfg, userRepo)
	reportH.RegisterRoutes(e, cfg, userRepo)
	adminAuditH.RegisterRoutes(e, cfg, userRepo)
}
