package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ushadow-io/feed-service/internal/models"
	"github.com/ushadow-io/feed-service/internal/repositories"
)

// SourceHandler handles source CRUD HTTP requests
type SourceHandler struct {
	sourceRepository repositories.SourceRepository
}

// NewSourceHandler creates a new SourceHandler
func NewSourceHandler(sourceRepo repositories.SourceRepository) *SourceHandler {
	return &SourceHandler{sourceRepository: sourceRepo}
}

// RegisterSourceRoutes registers source routes
func (h *SourceHandler) RegisterSourceRoutes(g *echo.Group) {
	g.GET("/sources", h.ListSources)
	g.POST("/sources", h.CreateSource)
	g.DELETE("/sources/:id", h.DeleteSource)
}

// ListSources returns all configured sources
func (h *SourceHandler) ListSources(c echo.Context) error {
	sources, err := h.sourceRepository.List()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if sources == nil {
		sources = []models.Source{}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"sources": sources}})
}

// CreateSource adds a new source subscription
func (h *SourceHandler) CreateSource(c echo.Context) error {
	var req models.CreateSourceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	source := &models.Source{
		SourceID:     uuid.NewString(),
		PlatformType: models.PlatformType(req.PlatformType),
		Name:         req.Name,
		FeedURL:      req.FeedURL,
	}
	if err := h.sourceRepository.Create(source); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"source": source}})
}

// DeleteSource removes a source. Posts already fetched from it are kept;
// source removal never cascades into the post collection.
func (h *SourceHandler) DeleteSource(c echo.Context) error {
	sourceID := c.Param("id")

	if err := h.sourceRepository.Delete(sourceID); err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "Source not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"deleted": true}})
}
