package comment

import (
	"errors"
	"net/http"

	"postfeed/internal/domain/auth"
	"postfeed/internal/domain/post"
	"postfeed/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/posts/:id/comments", h.List)
	rg.POST("/posts/:id/comments", h.Add)
	rg.DELETE("/comments/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	comments, err := h.service.ListByPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Post not found")
			return
		}
		response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Failed to load comments")
		return
	}
	response.Success(c, http.StatusOK, comments)
}

func (h *Handler) Add(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	created, err := h.service.Add(c.Request.Context(), c.Param("id"), req.Body, user)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Post not found")
			return
		}
		response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Failed to add comment")
		return
	}

	response.Success(c, http.StatusCreated, created)
}

func (h *Handler) Delete(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	err := h.service.Delete(c.Request.Context(), c.Param("id"), user)
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, ErrCommentNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Comment not found")
	case errors.Is(err, ErrNotPermitted):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not permitted to delete this comment")
	default:
		response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Failed to delete comment")
	}
}
