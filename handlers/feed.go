package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"safelife/services/feed"
)

// FeedHandler exposes the community feed endpoints.
type FeedHandler struct {
	Service feed.FeedService
}

func NewFeedHandler(svc feed.FeedService) *FeedHandler {
	return &FeedHandler{Service: svc}
}

// CreatePostHandler handles POST /api/posts.
func (h *FeedHandler) CreatePostHandler(c *gin.Context) {
	var req struct {
		AuthorName string `json:"authorName"`
		Content    string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	post, err := h.Service.CreatePost(c.Request.Context(), c.GetString("userID"), req.AuthorName, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// ListPostsHandler handles GET /api/posts.
func (h *FeedHandler) ListPostsHandler(c *gin.Context) {
	posts, err := h.Service.ListPosts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetPostHandler handles GET /api/posts/:id.
func (h *FeedHandler) GetPostHandler(c *gin.Context) {
	post, err := h.Service.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// AddCommentHandler handles POST /api/posts/:id/comments.
func (h *FeedHandler) AddCommentHandler(c *gin.Context) {
	var req struct {
		AuthorName string `json:"authorName"`
		Text       string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	comment, err := h.Service.AddComment(c.Request.Context(), c.Param("id"), c.GetString("userID"), req.AuthorName, req.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// ListCommentsHandler handles GET /api/posts/:id/comments.
func (h *FeedHandler) ListCommentsHandler(c *gin.Context) {
	comments, err := h.Service.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// ToggleLikeHandler handles POST /api/posts/:id/like.
func (h *FeedHandler) ToggleLikeHandler(c *gin.Context) {
	liked, err := h.Service.ToggleLike(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}
