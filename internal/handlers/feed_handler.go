package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/ushadow-io/feed-service/internal/models"
	"github.com/ushadow-io/feed-service/internal/repositories"
)

const (
	defaultPageSize = 20
	maxPageSize     = 50
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	postRepository repositories.PostRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository) *FeedHandler {
	return &FeedHandler{postRepository: postRepo}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns one filtered, paginated page of the platform feed.
// An out-of-range page is clamped to the last page and refetched server-side;
// the effective page is reported in the meta block.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	platform := models.PlatformType(c.QueryParam("platform"))
	if !platform.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown platform type")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	showSeen, _ := strconv.ParseBool(c.QueryParam("showSeen"))
	interest := c.QueryParam("interest")

	query := repositories.PostQuery{
		Platform: platform,
		Interest: interest,
		ShowSeen: showSeen,
		Skip:     int64((page - 1) * pageSize),
		Limit:    int64(pageSize),
	}
	posts, total, err := h.postRepository.FindPage(c.Request().Context(), query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	meta := models.NewPageMeta(page, pageSize, int(total))
	if clamped := models.ClampPage(page, meta.TotalPages); clamped != page {
		query.Skip = int64((clamped - 1) * pageSize)
		posts, total, err = h.postRepository.FindPage(c.Request().Context(), query)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		meta = models.NewPageMeta(clamped, pageSize, int(total))
	}

	if posts == nil {
		posts = []models.Post{}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"posts": posts,
		},
		"meta": meta,
	})
}
