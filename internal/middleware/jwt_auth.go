package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/saurabhkjha/studymaterial-backend/internal/auth"
)

// JWTAuth checks for a valid admin JWT and stores its claims in the context.
// Expired tokens are reported distinctly from otherwise invalid ones; a
// valid token without the admin role is forbidden rather than unauthorized.
func JWTAuth(verifier *auth.Verifier) echo.MiddlewareFunc {
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

			claims, err := verifier.ParseToken(parts[1])
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			if claims.Role != auth.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Admin role required")
			}

			// Store admin claims in context
			c.Set("admin", claims)

			return next(c)
		}
	}
}
