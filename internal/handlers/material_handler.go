package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/saurabhkjha/studymaterial-backend/internal/models"
	"github.com/saurabhkjha/studymaterial-backend/internal/repositories"
)

// MaterialHandler handles HTTP requests related to practice materials
type MaterialHandler struct {
	materialRepository repositories.MaterialRepository
}

// NewMaterialHandler creates a new MaterialHandler
func NewMaterialHandler(materialRepo repositories.MaterialRepository) *MaterialHandler {
	return &MaterialHandler{
		materialRepository: materialRepo,
	}
}

// RegisterPublicRoutes registers the material routes that need no auth
func (h *MaterialHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/materials", h.GetMaterials)
}

// RegisterAdminRoutes registers the material routes behind the admin gate
func (h *MaterialHandler) RegisterAdminRoutes(g *echo.Group) {
	g.POST("/materials", h.CreateMaterial)
	g.PUT("/materials/:id", h.UpdateMaterial)
	g.DELETE("/materials/:id", h.DeleteMaterial)
}

// GetMaterials returns all materials, newest first
func (h *MaterialHandler) GetMaterials(c echo.Context) error {
	materials, err := h.materialRepository.GetAllMaterials(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, materials)
}

// CreateMaterial creates a new material with display defaults applied
func (h *MaterialHandler) CreateMaterial(c echo.Context) error {
	var req models.CreateMaterialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	material := &models.Material{
		Title:       req.Title,
		Date:        req.Date,
		Category:    req.Category,
		Type:        req.Type,
		Description: req.Description,
		FileURL:     req.FileURL,
		ImageURL:    req.ImageURL,
	}
	if material.Date == "" {
		material.Date = time.Now().Format("2006-01-02")
	}
	if material.Category == "" {
		material.Category = models.DefaultMaterialCategory
	}
	if material.Type == "" {
		material.Type = models.DefaultMaterialType
	}

	if err := h.materialRepository.CreateMaterial(c.Request().Context(), material); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, material)
}

// UpdateMaterial applies partial updates to a material
func (h *MaterialHandler) UpdateMaterial(c echo.Context) error {
	var req models.UpdateMaterialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	material, err := h.materialRepository.UpdateMaterial(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Material not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, material)
}

// DeleteMaterial deletes a material
func (h *MaterialHandler) DeleteMaterial(c echo.Context) error {
	err := h.materialRepository.DeleteMaterial(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Material not found")
		}
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
