package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ushadow-io/feed-service/internal/ingest"
	"github.com/ushadow-io/feed-service/internal/models"
)

// RefreshHandler triggers platform-scoped ingestion runs
type RefreshHandler struct {
	refresher *ingest.Refresher
}

// NewRefreshHandler creates a new RefreshHandler
func NewRefreshHandler(refresher *ingest.Refresher) *RefreshHandler {
	return &RefreshHandler{refresher: refresher}
}

// RegisterRefreshRoutes registers refresh routes
func (h *RefreshHandler) RegisterRefreshRoutes(g *echo.Group) {
	g.POST("/platforms/:platform/refresh", h.RefreshPlatform)
}

// RefreshPlatform ingests fresh posts for one platform's sources. The run
// may be slow; it is a single blocking call, never a stream. A platform with
// no sources yields 422 so the client can explain "no sources" instead of
// surfacing an error.
func (h *RefreshHandler) RefreshPlatform(c echo.Context) error {
	platform := models.PlatformType(c.Param("platform"))
	if !platform.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown platform type")
	}

	stats, err := h.refresher.Refresh(c.Request().Context(), platform)
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrNoSources):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "No sources configured for this platform")
		case errors.Is(err, ingest.ErrRefreshInProgress):
			return echo.NewHTTPError(http.StatusConflict, "Refresh already in progress for this platform")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": stats})
}
