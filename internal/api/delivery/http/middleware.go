package http

import (
	"net/http"

	"go-signalist/internal/api/dto"
	"go-signalist/internal/api/service"
	"go-signalist/pkg/logger"

	"github.com/labstack/echo/v4"
)

const sessionContextKey = "session"

// SessionMiddleware resolves the caller's session from request headers. A
// missing session answers with a sign-in redirect, not an error; resolver
// failures are real errors.
func SessionMiddleware(resolver service.SessionResolver, log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := resolver.Resolve(c.Request().Context(), c.Request().Header)
			if err != nil {
				log.Error("Failed to resolve session", logger.ErrorField(err))
				return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to resolve session"})
			}
			if sess == nil {
				return c.JSON(http.StatusUnauthorized, dto.RedirectResponse{Redirect: "/sign-in"})
			}
			c.Set(sessionContextKey, *sess)
			return next(c)
		}
	}
}

func sessionFromContext(c echo.Context) service.Session {
	sess, _ := c.Get(sessionContextKey).(service.Session)
	return sess
}
