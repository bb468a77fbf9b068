package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/snapgram/backend/internal/facade"
	"github.com/anonto42/snapgram/backend/internal/models"
)

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	facade *facade.Facade
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(f *facade.Facade) *UserHandler {
	return &UserHandler{facade: f}
}

// RegisterUserRoutes registers profile-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users", h.GetUsers)
	g.GET("/users/:id", h.GetUser)
	g.PUT("/users/:id", h.UpdateUser)
}

// GetUsers lists profiles, newest first
func (h *UserHandler) GetUsers(c echo.Context) error {
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	users, err := h.facade.GetUsers(c.Request().Context(), limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser retrieves a profile by ID
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.facade.GetUserByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser updates a profile, optionally replacing the avatar image
func (h *UserHandler) UpdateUser(c echo.Context) error {
	userID := c.Param("id")

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Only the owner may edit their profile.
	current, err := h.facade.GetCurrentUser(c.Request().Context(), sessionToken(c))
	if err != nil {
		return httpError(err)
	}
	if current.ID.Hex() != userID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this profile")
	}

	file, fileType, err := formFile(c, "file")
	if err != nil {
		return err
	}

	profile, err := h.facade.UpdateUser(c.Request().Context(), facade.ProfileEdit{
		UserID:   userID,
		Name:     req.Name,
		Username: req.Username,
		Bio:      req.Bio,
		ImageURL: req.ImageURL,
		ImageID:  req.ImageID,
		File:     file,
		FileType: fileType,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}
