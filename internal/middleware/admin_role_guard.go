package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// トークンのroleクレームに入る値
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// AdminRoleGuard はAuthJWTの後段に置く。contextのroleがADMIN以外なら403。
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxUserRoleKey).(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			if role != RoleAdmin {
				return c.JSON(http.StatusForbidden, errorJSON("admin only"))
			}
			return next(c)
		}
	}
}
