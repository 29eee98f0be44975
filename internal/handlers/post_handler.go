package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/ushadow-io/feed-service/internal/models"
	"github.com/ushadow-io/feed-service/internal/repositories"
)

// PostHandler handles per-post mutation requests
type PostHandler struct {
	postRepository repositories.PostRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository) *PostHandler {
	return &PostHandler{postRepository: postRepo}
}

// RegisterPostRoutes registers post mutation routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts/:id/seen", h.MarkSeen)
	g.POST("/posts/:id/bookmark", h.SetBookmark)
}

// MarkSeen flags a post as seen. The response carries no body the client
// depends on beyond success.
func (h *PostHandler) MarkSeen(c echo.Context) error {
	postID := c.Param("id")

	if err := h.postRepository.MarkSeen(c.Request().Context(), postID); err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"seen": true}})
}

// SetBookmark sets a post's bookmark flag to the requested value.
func (h *PostHandler) SetBookmark(c echo.Context) error {
	postID := c.Param("id")

	var req models.BookmarkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.postRepository.SetBookmarked(c.Request().Context(), postID, *req.Bookmarked); err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"bookmarked": *req.Bookmarked}})
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not found")
}
