package middleware

import (
	"net/http"

	"agrosoft/internal/domain/model"

	"github.com/labstack/echo/v4"
)

//contextに入っているrole_idが許可リストにあるかを確認します。

func RequireRoles(allowed ...int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxRoleIDKey)
			roleID, ok := rawRole.(int64)
			if !ok || roleID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("no autenticado"))
			}

			for _, id := range allowed {
				if roleID == id {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, errorJSON("permisos insuficientes"))
		}
	}
}

// Administradorだけ許可
func AdminOnly() echo.MiddlewareFunc {
	return RequireRoles(model.RoleAdminID)
}
