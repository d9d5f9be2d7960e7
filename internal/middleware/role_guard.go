package middleware

import (
	"net/http"

	"app/internal/domain/authz"
	"app/internal/domain/model"

	"github.com/labstack/echo/v4"
)

//contextのロールが操作を許可されているか、許可テーブルで確認します。

func RequireOperation(op authz.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if !authz.Allowed(model.Role(role), op) {
				return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
			}

			return next(c)
		}
	}
}
