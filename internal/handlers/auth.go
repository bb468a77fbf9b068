package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/snapgram/backend/internal/facade"
	"github.com/anonto42/snapgram/backend/internal/models"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	facade *facade.Facade
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(f *facade.Facade) *AuthHandler {
	return &AuthHandler{facade: f}
}

// RegisterAuthRoutes registers the unprotected authentication routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.SignUp)
	g.POST("/signin", h.SignIn)
}

// RegisterSessionRoutes registers the routes that need a live session
func (h *AuthHandler) RegisterSessionRoutes(g *echo.Group) {
	g.POST("/auth/signout", h.SignOut)
	g.GET("/auth/me", h.Me)
}

// SignUp creates an account and its profile document
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req models.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.facade.CreateAccount(c.Request().Context(), facade.NewUser{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, profile)
}

// SignIn exchanges email+password for a session token
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, session, err := h.facade.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token, "session": session})
}

// SignOut destroys the caller's current session
func (h *AuthHandler) SignOut(c echo.Context) error {
	if err := h.facade.SignOut(c.Request().Context(), sessionToken(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the profile of the signed-in user
func (h *AuthHandler) Me(c echo.Context) error {
	profile, err := h.facade.GetCurrentUser(c.Request().Context(), sessionToken(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}
