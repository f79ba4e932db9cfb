package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saurabhkjha/studymaterial-backend/internal/engagement"
	"github.com/saurabhkjha/studymaterial-backend/internal/repositories"
)

// EngagementHandler exposes the public download and view counters
type EngagementHandler struct {
	tracker *engagement.Tracker
}

// NewEngagementHandler creates a new EngagementHandler
func NewEngagementHandler(tracker *engagement.Tracker) *EngagementHandler {
	return &EngagementHandler{
		tracker: tracker,
	}
}

// RegisterEngagementRoutes registers the engagement routes
func (h *EngagementHandler) RegisterEngagementRoutes(g *echo.Group) {
	g.POST("/materials/:id/download", h.RecordDownload)
	g.POST("/posts/:slug/view", h.RecordView)
}

// RecordDownload counts one download of a material and returns the new total
func (h *EngagementHandler) RecordDownload(c echo.Context) error {
	downloads, err := h.tracker.RecordDownload(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Material not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"downloads": downloads})
}

// RecordView counts one view of a published post for this client, unless the
// same client was already counted inside the dedup window
func (h *EngagementHandler) RecordView(c echo.Context) error {
	result, err := h.tracker.RecordView(c.Request().Context(), c.Param("slug"), c.RealIP())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, result)
}
