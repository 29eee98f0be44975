package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ushadow-io/feed-service/internal/models"
	"github.com/ushadow-io/feed-service/internal/repositories"
)

// InterestHandler serves the interest vocabulary
type InterestHandler struct {
	interestRepository repositories.InterestRepository
}

// NewInterestHandler creates a new InterestHandler
func NewInterestHandler(interestRepo repositories.InterestRepository) *InterestHandler {
	return &InterestHandler{interestRepository: interestRepo}
}

// RegisterInterestRoutes registers interest routes
func (h *InterestHandler) RegisterInterestRoutes(g *echo.Group) {
	g.GET("/interests", h.ListInterests)
}

// ListInterests returns the interest vocabulary ordered by weight
func (h *InterestHandler) ListInterests(c echo.Context) error {
	interests, err := h.interestRepository.List()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if interests == nil {
		interests = []models.Interest{}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"interests": interests}})
}
