package handlers

import (
	"net/http"

	"arcade_hub/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreatePostRequest struct {
	Content  string     `json:"content"`
	PostType string     `json:"post_type"`
	GameID   *uuid.UUID `json:"game_id"`
	Score    *int       `json:"score"`
}

func (h *Handler) GetFeed(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	posts, err := h.Feeds.For(userID).Refresh(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *Handler) CreatePost(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	feed := h.Feeds.For(userID)
	if _, err := feed.View(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	p, err := feed.CreatePost(c.Request.Context(), domain.NewPost{
		Content:  req.Content,
		PostType: req.PostType,
		GameID:   req.GameID,
		Score:    req.Score,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) DeletePost(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	postID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	feed := h.Feeds.For(userID)
	if _, err := feed.View(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	if err := feed.DeletePost(c.Request.Context(), postID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ToggleLike(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	postID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	feed := h.Feeds.For(userID)
	if _, err := feed.View(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	p, err := feed.ToggleLike(c.Request.Context(), postID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
