package middleware

import (
	"net/http"
	"pharmacy-store/internal/auth"
	"pharmacy-store/internal/model"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// Auth validates the bearer token and stores the caller's identity on the
// request context for the handlers downstream.
func Auth(tokenMaker *auth.TokenMaker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if header == "" || token == header {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token, authorization denied")
			}

			claims, err := tokenMaker.Parse(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "token is not valid")
			}

			c.Set(ctxUserID, claims.UserID)
			c.Set(ctxRole, claims.Role)
			return next(c)
		}
	}
}

// AdminOnly gates a route to admin callers. Must run after Auth.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Role(c) != model.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "access denied, admin only")
			}
			return next(c)
		}
	}
}

func UserID(c echo.Context) uint {
	userID, _ := c.Get(ctxUserID).(uint)
	return userID
}

func Role(c echo.Context) string {
	role, _ := c.Get(ctxRole).(string)
	return role
}
