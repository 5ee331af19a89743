package post

import (
	"encoding/base64"
	"errors"
	"net/http"

	"postfeed/internal/domain/auth"
	"postfeed/internal/domain/favorite"
	"postfeed/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler exposes the feed over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	posts := rg.Group("/posts")
	{
		posts.GET("", h.List)
		posts.POST("", h.Create)
		posts.DELETE("/:id", h.Delete)
		posts.POST("/:id/favorite", h.Favorite)
		posts.DELETE("/:id/favorite", h.Unfavorite)
	}
}

// List serves all three feed shapes plus substring search:
// GET /posts?author=<id>  GET /posts?favorites=true  GET /posts?q=<query>
func (h *Handler) List(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	filter := FeedFilter{
		AuthorID:  c.Query("author"),
		Favorites: c.Query("favorites") == "true",
	}

	var posts []Post
	var err error
	if q := c.Query("q"); q != "" {
		posts, err = h.service.Search(c.Request.Context(), filter, q, user)
	} else {
		posts, err = h.service.Fetch(c.Request.Context(), filter, user)
	}
	if err != nil {
		response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Failed to load posts")
		return
	}

	response.Success(c, http.StatusOK, ToPostListResponse(posts, user.ID))
}

func (h *Handler) Create(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	draft := EditableFields{
		Title:            req.Title,
		Body:             req.Body,
		ImageContentType: req.ImageContentType,
	}
	if req.ImageBase64 != "" {
		payload, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid image payload")
			return
		}
		draft.Image = payload
	}

	p, err := h.service.Create(c.Request.Context(), draft, user)
	if err != nil {
		// The post committed; only the image step failed.
		if errors.Is(err, ErrImageUpload) {
			response.SuccessWithWarning(c, http.StatusCreated, ToPostResponse(*p, user.ID), "post created without image")
			return
		}
		response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Failed to create post")
		return
	}

	response.Success(c, http.StatusCreated, ToPostResponse(*p, user.ID))
}

func (h *Handler) Delete(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	p, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Post not found")
			return
		}
		response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Failed to load post")
		return
	}

	err = h.service.Delete(c.Request.Context(), p, user)
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, ErrAssetCleanup):
		// Row deletion is the source of truth; report the orphaned asset.
		response.SuccessWithWarning(c, http.StatusOK, nil, "post deleted, image cleanup failed")
	case errors.Is(err, ErrNotPermitted):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the author can delete a post")
	case errors.Is(err, ErrPostNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Post not found")
	default:
		response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Failed to delete post")
	}
}

func (h *Handler) Favorite(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	err := h.service.Favorite(c.Request.Context(), &Post{ID: c.Param("id")}, user)
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, favorite.ErrAlreadyFavorited):
		response.Error(c, http.StatusConflict, "ALREADY_FAVORITED", "Post is already favorited")
	default:
		response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Failed to favorite post")
	}
}

func (h *Handler) Unfavorite(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	// No row lookup: unfavoriting a relation whose post was deleted must
	// still work, orphaned relations are legal.
	err := h.service.Unfavorite(c.Request.Context(), &Post{ID: c.Param("id")}, user)
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, favorite.ErrNotFavorited):
		response.Error(c, http.StatusNotFound, "NOT_FAVORITED", "Post is not favorited")
	default:
		response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Failed to unfavorite post")
	}
}
