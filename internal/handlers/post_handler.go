package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/snapgram/backend/internal/facade"
	"github.com/anonto42/snapgram/backend/internal/models"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	facade *facade.Facade
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(f *facade.Facade) *PostHandler {
	return &PostHandler{facade: f}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetInfinitePosts)
	g.GET("/posts/recent", h.GetRecentPosts)
	g.GET("/posts/search", h.SearchPosts)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.PUT("/posts/:id/likes", h.LikePost)
	g.POST("/posts/:id/likes", h.AddLike)
	g.DELETE("/posts/:id/likes", h.RemoveLike)
	g.GET("/users/:id/posts", h.GetUserPosts)
}

// currentProfile resolves the caller's session to their profile
func (h *PostHandler) currentProfile(c echo.Context) (*models.UserProfile, error) {
	profile, err := h.facade.GetCurrentUser(c.Request().Context(), sessionToken(c))
	if err != nil {
		return nil, httpError(err)
	}
	return profile, nil
}

// CreatePost creates a new post from a multipart form with an image file
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	file, fileType, err := formFile(c, "file")
	if err != nil {
		return err
	}

	profile, err := h.currentProfile(c)
	if err != nil {
		return err
	}

	post, err := h.facade.CreatePost(c.Request().Context(), facade.NewPost{
		CreatorID: profile.ID.Hex(),
		Caption:   req.Caption,
		Location:  req.Location,
		Tags:      req.Tags,
		File:      file,
		FileType:  fileType,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.facade.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// GetRecentPosts retrieves the newest posts
func (h *PostHandler) GetRecentPosts(c echo.Context) error {
	posts, err := h.facade.GetRecentPosts(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetInfinitePosts retrieves a cursor-paginated page of posts
func (h *PostHandler) GetInfinitePosts(c echo.Context) error {
	posts, err := h.facade.GetInfinitePosts(c.Request().Context(), c.QueryParam("cursor"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// SearchPosts runs a full-text search over captions
func (h *PostHandler) SearchPosts(c echo.Context) error {
	posts, err := h.facade.SearchPosts(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetUserPosts retrieves the posts created by a user
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	posts, err := h.facade.GetUserPosts(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// UpdatePost updates an existing post, optionally replacing its image
func (h *PostHandler) UpdatePost(c echo.Context) error {
	postID := c.Param("id")

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.currentProfile(c)
	if err != nil {
		return err
	}
	existing, err := h.facade.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return httpError(err)
	}
	if existing.CreatorID != profile.ID.Hex() {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this post")
	}

	file, fileType, err := formFile(c, "file")
	if err != nil {
		return err
	}

	post, err := h.facade.UpdatePost(c.Request().Context(), facade.PostEdit{
		PostID:   postID,
		Caption:  req.Caption,
		Location: req.Location,
		Tags:     req.Tags,
		ImageURL: req.ImageURL,
		ImageID:  req.ImageID,
		File:     file,
		FileType: fileType,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post and its stored image
func (h *PostHandler) DeletePost(c echo.Context) error {
	postID := c.Param("id")
	imageID := c.QueryParam("image_id")

	profile, err := h.currentProfile(c)
	if err != nil {
		return err
	}
	existing, err := h.facade.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return httpError(err)
	}
	if existing.CreatorID != profile.ID.Hex() {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this post")
	}

	if err := h.facade.DeletePost(c.Request().Context(), postID, imageID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// LikePost overwrites the post's likes set
func (h *PostHandler) LikePost(c echo.Context) error {
	var req models.LikePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.facade.LikePost(c.Request().Context(), c.Param("id"), req.Likes)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// AddLike adds the caller to the post's likes set atomically
func (h *PostHandler) AddLike(c echo.Context) error {
	profile, err := h.currentProfile(c)
	if err != nil {
		return err
	}
	post, err := h.facade.AddLike(c.Request().Context(), c.Param("id"), profile.ID.Hex())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// RemoveLike removes the caller from the post's likes set atomically
func (h *PostHandler) RemoveLike(c echo.Context) error {
	profile, err := h.currentProfile(c)
	if err != nil {
		return err
	}
	post, err := h.facade.RemoveLike(c.Request().Context(), c.Param("id"), profile.ID.Hex())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}
