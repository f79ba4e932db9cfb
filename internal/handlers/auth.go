package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saurabhkjha/studymaterial-backend/internal/auth"
)

// AuthHandler handles admin authentication requests
type AuthHandler struct {
	verifier *auth.Verifier
	limiter  *auth.LoginLimiter
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(verifier *auth.Verifier, limiter *auth.LoginLimiter) *AuthHandler {
	return &AuthHandler{
		verifier: verifier,
		limiter:  limiter,
	}
}

// RegisterAuthRoutes registers authentication routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/admin/login", h.Login)
}

// LoginRequest defines the request body for admin login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies the admin credential pair and returns a signed token. The
// failure response is the same whichever credential was wrong; only the rate
// limit announces itself differently.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ip := c.RealIP()
	if !h.limiter.Check(ip) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "Too many login attempts, try again later")
	}

	token, err := h.verifier.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.limiter.Record(ip)
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
		}
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token})
}
