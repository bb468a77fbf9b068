package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/snapgram/backend/internal/facade"
	"github.com/anonto42/snapgram/backend/internal/models"
)

// SavedPostHandler handles HTTP requests for bookmarks
type SavedPostHandler struct {
	facade *facade.Facade
}

// NewSavedPostHandler creates a new SavedPostHandler
func NewSavedPostHandler(f *facade.Facade) *SavedPostHandler {
	return &SavedPostHandler{facade: f}
}

// RegisterSavedPostRoutes registers bookmark-related routes
func (h *SavedPostHandler) RegisterSavedPostRoutes(g *echo.Group) {
	g.POST("/saved-posts", h.SavePost)
	g.DELETE("/saved-posts/:id", h.DeleteSavedPost)
	g.GET("/users/:id/saved-posts", h.GetSavedPosts)
}

// SavePost creates a bookmark record
func (h *SavedPostHandler) SavePost(c echo.Context) error {
	var req models.SavePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	saved, err := h.facade.SavePost(c.Request().Context(), req.PostID, req.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, saved)
}

// DeleteSavedPost removes a bookmark record
func (h *SavedPostHandler) DeleteSavedPost(c echo.Context) error {
	if err := h.facade.DeleteSavedPost(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetSavedPosts lists a user's bookmarks
func (h *SavedPostHandler) GetSavedPosts(c echo.Context) error {
	saved, err := h.facade.GetSavedPosts(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, saved)
}
