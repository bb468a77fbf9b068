package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/snapgram/backend/internal/accounts"
)

// SessionAuthMiddleware checks for a valid session token and stores its
// claims and the raw token in the request context.
func SessionAuthMiddleware(accountsSvc accounts.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}
			token := parts[1]

			claims, err := accountsSvc.VerifySession(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired session")
			}

			c.Set("sessionToken", token)
			c.Set("accountID", claims.AccountID)
			c.Set("claims", claims)

			return next(c)
		}
	}
}
